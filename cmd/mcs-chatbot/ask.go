package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	assistant, err := buildAssistant(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	result, err := assistant.AnswerQuestion(cmd.Context(), question)
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	if len(result.Citations) > 0 {
		fmt.Println("\nSources:")
		for _, c := range result.Citations {
			fmt.Printf("  %s (part %d of %d)\n", c.SourceFilename, c.SequenceIndex+1, c.TotalChunksInSource)
		}
	}
	if len(result.RelatedLinks) > 0 {
		fmt.Println("\nOfficial resources:")
		for _, g := range result.RelatedLinks {
			fmt.Printf("  %s\n", g.Title)
			for _, l := range g.Links {
				fmt.Printf("    %s: %s\n", l.Name, l.URL)
			}
		}
	}
	return nil
}
