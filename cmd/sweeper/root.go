package main

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pssnyder/MinesweeperAI/internal/ai"
	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

var (
	log = logrus.New()

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "An AI that plays minesweeper",
	Long: `sweeper runs a constraint-solving minesweeper AI against
randomly generated boards, either one watchable game at a time or in
bulk for statistics.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringP("difficulty", "d", "", "preset board (beginner, intermediate, expert, ai-test)")
	rootCmd.PersistentFlags().Int("width", 9, "board width")
	rootCmd.PersistentFlags().Int("height", 9, "board height")
	rootCmd.PersistentFlags().Int("mines", 10, "mine count")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "also log to a rotating file")

	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.SetEnvPrefix("sweeper")
	viper.AutomaticEnv()
}

func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config: %w", err)
		}
	}

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	if logFile := viper.GetString("log-file"); logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
		log.AddHook(hook)
	}

	ai.Log = log
	return nil
}

func loadParams() (mines.GameParams, error) {
	if difficulty := viper.GetString("difficulty"); difficulty != "" {
		return mines.ParseDifficulty(difficulty)
	}
	params := mines.GameParams{
		Width:     viper.GetInt("width"),
		Height:    viper.GetInt("height"),
		MineCount: viper.GetInt("mines"),
	}
	return params, params.Validate()
}

func newRand() *rand.Rand {
	if seed := viper.GetUint64("seed"); seed != 0 {
		return rand.New(rand.NewPCG(seed, seed+1))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
