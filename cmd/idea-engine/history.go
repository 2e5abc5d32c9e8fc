// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-engine/internal/history"
	"github.com/pdiddy/idea-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and export past generation runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(loadConfig().History)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		history.FormatTable(records, cmd.OutOrStdout())
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the ideas from one run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := lookupRecord(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rec.Ideas)
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export one run as Markdown or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := lookupRecord(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		path, _ := cmd.Flags().GetString("output")
		if path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "markdown", "md":
			err = history.WriteMarkdown(rec, out)
		case "yaml":
			err = history.WriteYAML([]types.GenerationRecord{rec}, out)
		default:
			return fmt.Errorf("unknown format %q: use markdown or yaml", format)
		}
		if err != nil {
			return err
		}

		if path != "" {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
		return nil
	},
}

// lookupRecord parses the ID argument and fetches the record.
func lookupRecord(cmd *cobra.Command, arg string) (types.GenerationRecord, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return types.GenerationRecord{}, fmt.Errorf("invalid record ID %q", arg)
	}

	store, err := history.NewStore(loadConfig().History)
	if err != nil {
		return types.GenerationRecord{}, err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), id)
	if err != nil {
		return types.GenerationRecord{}, fmt.Errorf("record %d: %w", id, err)
	}
	return rec, nil
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum records to list (0 uses the configured default)")
	historyExportCmd.Flags().String("format", "markdown", "export format: markdown or yaml")
	historyExportCmd.Flags().String("output", "", "write to a file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
