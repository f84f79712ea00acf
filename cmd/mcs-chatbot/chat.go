package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open an interactive chat session",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	assistant, err := buildAssistant(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(assistant), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
