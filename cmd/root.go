package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/airahq/aira/handler"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "aira",
	Short: "aira is an AI incident response agent",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "version" {
			return
		}

		if err := run(); err != nil {
			slog.Error("Failed to run command", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Error("Failed to get user home directory", slog.Any("error", err))
		os.Exit(1)
	}
	rootCmd.Flags().StringVar(&configPath, "config", path.Join(home, "aira.toml"), "config file path")
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	slog.Info("Server started")
	if err := handler.Handle(ctx, configPath); err != nil {
		return err
	}

	return nil
}
