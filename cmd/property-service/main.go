package main

import (
	"log"
	"os"

	"property-service/internal"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "property-service",
	Short: "Property listings API with AI text generation and reverse geocoding",
	// без подкоманды запускаем сервер
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return internal.Migrate(envFile)
	},
}

func serve() error {
	application, err := internal.NewApp(envFile)
	if err != nil {
		log.Printf("Failed to initialize application: %v", err)
		return err
	}
	return application.Run()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
