package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	assistant, err := buildAssistant(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(assistant).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("Listening on %s\n", cfg.Server.Addr)
	return srv.ListenAndServe()
}
