package main

import (
	"github.com/spf13/cobra"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/config"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/logger"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mcs-chatbot",
	Short: "Question answering over the Maharashtra Cooperative Societies Act",
	Long: `mcs-chatbot indexes the MCS Act and related documents and answers
questions about them in plain language, citing the passages each answer
is grounded on.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (default: ./config.yaml, then ~/.config/mcs-chatbot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	logger.Debug("using config at %s", path)
	return cfg, nil
}
