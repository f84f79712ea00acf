package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/extract"
	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file or glob ...]",
	Short: "Index documents into the vector store",
	Long: `Extracts text from the given PDF, text, or markdown files, splits it
into overlapping chunks, embeds them, and writes them to the vector store.
Re-ingesting a file replaces its previous chunks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no matching files")
	}

	emb, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	ch, err := buildChunker(cfg)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("ingesting"),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	pipeline := ingest.NewPipeline(extract.NewRegistry(), ch, emb, store,
		ingest.WithWorkers(cfg.Ingest.Workers),
		ingest.WithProgress(func(_ string, _, _ int) {
			_ = bar.Add(1)
		}),
	)

	summary, err := pipeline.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	fmt.Printf("Ingested %d documents (%d chunks)\n", summary.DocumentsProcessed, summary.ChunksWritten)
	for _, f := range summary.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.Filename, f.Err)
	}
	if len(summary.Failures) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(summary.Failures), len(paths))
	}
	return nil
}

// expandPaths resolves globs and deduplicates, keeping a stable order.
func expandPaths(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if matches == nil {
			matches = []string{arg}
		}
		for _, m := range matches {
			key := strings.TrimSpace(m)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
