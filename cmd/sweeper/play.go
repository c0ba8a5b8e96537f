package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch the AI play a single game",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Duration("delay", 300*time.Millisecond, "pause between moves")
	playCmd.Flags().Int("max-moves", 999, "abort after this many moves")
	viper.BindPFlag("delay", playCmd.Flags().Lookup("delay"))
	viper.BindPFlag("max-moves", playCmd.Flags().Lookup("max-moves"))
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}

	r := newRand()
	start := mines.Point{X: params.Width / 2, Y: params.Height / 2}
	board, err := mines.NewGame(params, start, r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	delay := viper.GetDuration("delay")
	maxMoves := viper.GetInt("max-moves")
	player := ai.NewPlayer(board, r)

	log.Infof("playing %s", params)
	fmt.Fprintln(out, board.Render())

	for moves := 0; !board.IsOver() && moves < maxMoves; moves++ {
		_, err := player.TakeTurn()
		if errors.Is(err, ai.ErrNoMoveAvailable) {
			log.Warn("no move available, stopping")
			break
		}
		if err != nil {
			return fmt.Errorf("solver failed: %w", err)
		}

		fmt.Fprintln(out, player.ExplainLastMove())
		fmt.Fprintln(out, board.Render())
		if !board.IsOver() {
			time.Sleep(delay)
		}
	}

	board.RevealAll()
	fmt.Fprintln(out, board.Render())

	stats := player.Statistics()
	outcome := "lost"
	if board.IsWon() {
		outcome = "won"
	}
	fmt.Fprintf(
		out,
		"%s in %d moves (%d flags, %d guesses)\n",
		outcome, stats.MovesMade, stats.FlagsPlaced, stats.Guesses,
	)
	return nil
}
