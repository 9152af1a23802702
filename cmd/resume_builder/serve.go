package main

import (
	"fmt"

	"github.com/jonathan/ats-resume-builder/internal/config"
	"github.com/jonathan/ats-resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveAPIKey string
	serveModel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start an HTTP server with the resume form, the generated resume display and PDF export,
plus a JSON API for generation. The Gemini credential is read from GEMINI_API_KEY on every submission.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Gemini model used for generation")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, err := newServer(cmd)
	if err != nil {
		return err
	}
	return srv.Start()
}

// newServer merges flags over the config file and builds the server.
func newServer(cmd *cobra.Command) (*server.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = serveModel
	}
	cfg = cfg.MergeWithDefaults(config.Config{Port: config.DefaultPort})

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Generator: newGenerator(cfg.LLMConfig(), cfg.APIKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}
