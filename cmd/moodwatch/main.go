package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/moodwatch/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "moodwatch",
		Short: "Live emotion stats in your terminal",
		Long: "Polls an emotion-detection backend, charts the seven category " +
			"percentages and speaks the dominant emotion whenever it changes.",
		Version: version.Get(),
		RunE:    runTUI,
	}

	rootCmd.AddCommand(onceCmd())
	addDevCommands(rootCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
