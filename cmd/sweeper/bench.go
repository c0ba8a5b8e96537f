package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run many games and report solver statistics",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntP("games", "n", 100, "number of games to play")
	viper.BindPFlag("games", benchCmd.Flags().Lookup("games"))
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}

	games := viper.GetInt("games")
	if games <= 0 {
		return fmt.Errorf("games must be positive")
	}

	r := newRand()
	start := mines.Point{X: params.Width / 2, Y: params.Height / 2}
	maxMoves := 2 * params.Width * params.Height

	var (
		wins         int
		totalMoves   int
		totalGuesses int
	)

	log.Infof("benchmarking %s over %d games", params, games)

	for i := 0; i < games; i++ {
		board, err := mines.NewGame(params, start, r)
		if err != nil {
			return err
		}

		player := ai.NewPlayer(board, r)
		for moves := 0; !board.IsOver() && moves < maxMoves; moves++ {
			if _, err := player.TakeTurn(); err != nil {
				if errors.Is(err, ai.ErrNoMoveAvailable) {
					break
				}
				return fmt.Errorf("solver failed in game %d: %w", i+1, err)
			}
		}

		stats := player.Statistics()
		totalMoves += stats.MovesMade
		totalGuesses += stats.Guesses
		if board.IsWon() {
			wins++
		}
		log.WithFields(map[string]any{
			"game":    i + 1,
			"won":     board.IsWon(),
			"moves":   stats.MovesMade,
			"guesses": stats.Guesses,
		}).Debug("game finished")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "games:     %d\n", games)
	fmt.Fprintf(out, "wins:      %d (%.1f%%)\n", wins, 100*float64(wins)/float64(games))
	fmt.Fprintf(out, "avg moves: %.1f\n", float64(totalMoves)/float64(games))
	fmt.Fprintf(out, "avg guesses: %.1f\n", float64(totalGuesses)/float64(games))
	return nil
}
