// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-engine/internal/generate"
	"github.com/pdiddy/idea-engine/internal/history"
	"github.com/pdiddy/idea-engine/internal/papers"
	"github.com/pdiddy/idea-engine/internal/websearch"
	"github.com/pdiddy/idea-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate project ideas for a topic",
	Long: `Generate gathers web-search and academic-paper context for a topic,
assembles a prompt, and asks the language model for project ideas. The
result is printed to stdout and recorded in the history database.

With --batch, requests are read from a YAML file and run in sequence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		svc := newService(cfg)

		batchFile, _ := cmd.Flags().GetString("batch")
		if batchFile != "" {
			return runBatch(cmd, svc, cfg, batchFile)
		}

		topic, _ := cmd.Flags().GetString("topic")
		numIdeas, _ := cmd.Flags().GetInt("num-ideas")
		complexity, _ := cmd.Flags().GetString("complexity")

		req := types.Request{
			Topic:      topic,
			NumIdeas:   numIdeas,
			Complexity: types.Complexity(complexity),
		}

		rec, err := svc.Generate(cmd.Context(), req, os.Stderr)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), rec.Ideas)

		if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
			saveRecord(cmd.Context(), cfg, &rec)
		}

		if out, _ := cmd.Flags().GetString("output"); out != "" {
			if err := exportMarkdownFile(rec, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "topic of interest (e.g. \"AI for sustainable agriculture\")")
	generateCmd.Flags().Int("num-ideas", 5, "number of project ideas to generate (1-10)")
	generateCmd.Flags().String("complexity", string(types.Intermediate), "complexity tier: Beginner, Intermediate, or Advanced")
	generateCmd.Flags().String("output", "", "also write the result as a Markdown file")
	generateCmd.Flags().String("batch", "", "YAML request file to run instead of a single topic")
	generateCmd.Flags().String("batch-out", "", "YAML file for batch results")
	generateCmd.Flags().Bool("no-save", false, "skip recording the run in the history database")

	rootCmd.AddCommand(generateCmd)
}

// newService wires the provider clients and the model client from config.
func newService(cfg types.Config) *generate.Service {
	return &generate.Service{
		Web: &websearch.Client{
			Client: &http.Client{Timeout: cfg.WebSearch.Timeout},
			Config: cfg.WebSearch,
		},
		Papers: &papers.Client{
			Client: &http.Client{Timeout: cfg.Papers.Timeout},
			Config: cfg.Papers,
		},
		Model: generate.NewGroqClient(cfg.Model),
		Retry: generate.RetryPolicy{
			MaxAttempts: cfg.Model.MaxAttempts,
			Backoff:     cfg.Model.RetryBackoff,
		},
	}
}

// saveRecord stores a finished run. History failures are warnings, not
// request failures: the ideas were already delivered.
func saveRecord(ctx context.Context, cfg types.Config, rec *types.GenerationRecord) {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.Save(ctx, *rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
		return
	}
	rec.ID = id
}

func runBatch(cmd *cobra.Command, svc *generate.Service, cfg types.Config, batchFile string) error {
	rf, err := generate.ReadRequestFile(batchFile)
	if err != nil {
		return err
	}

	var (
		records []types.GenerationRecord
		failed  int
	)
	for _, params := range rf.Requests {
		req := params.ToRequest()
		fmt.Fprintf(os.Stderr, "generating %q\n", req.Topic)

		rec, err := svc.Generate(cmd.Context(), req, os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %q: %v\n", req.Topic, err)
			failed++
			continue
		}

		if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
			saveRecord(cmd.Context(), cfg, &rec)
		}
		records = append(records, rec)
	}

	if out, _ := cmd.Flags().GetString("batch-out"); out != "" {
		if err := generate.WriteResultFile(out, records, failed); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	}

	fmt.Fprintf(os.Stderr, "%d generated, %d failed\n", len(records), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(rf.Requests))
	}
	return nil
}

func exportMarkdownFile(rec types.GenerationRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return history.WriteMarkdown(rec, f)
}
