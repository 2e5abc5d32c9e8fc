// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-engine/internal/papers"
	"github.com/pdiddy/idea-engine/internal/websearch"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show the raw research feeds for a topic",
	Long: `Resources fetches and prints the web-search digest and academic-paper
list for a topic exactly as gathered, without invoking the language model.
Useful for inspecting what context a generation run would see.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		if strings.TrimSpace(topic) == "" {
			return fmt.Errorf("topic is empty: pass --topic")
		}

		cfg := loadConfig()
		out := cmd.OutOrStdout()

		web := &websearch.Client{
			Client: &http.Client{Timeout: cfg.WebSearch.Timeout},
			Config: cfg.WebSearch,
		}
		summary, err := web.Search(cmd.Context(), topic)

		fmt.Fprintln(out, "## Web Results")
		fmt.Fprintln(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: web search failed: %v\n", err)
			fmt.Fprintln(out, "(unavailable)")
		} else {
			fmt.Fprintln(out, summary.Text)
		}

		paperClient := &papers.Client{
			Client: &http.Client{Timeout: cfg.Papers.Timeout},
			Config: cfg.Papers,
		}
		feed, err := paperClient.Search(cmd.Context(), topic)
		feed = papers.Degrade(feed, err)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Research Papers")
		fmt.Fprintln(out)
		if feed.Notice != "" {
			fmt.Fprintln(out, feed.Notice)
			return nil
		}
		for _, p := range feed.Papers {
			fmt.Fprintf(out, "- %s: %s\n", p.Title, p.URL)
		}
		return nil
	},
}

func init() {
	resourcesCmd.Flags().String("topic", "", "topic of interest")

	rootCmd.AddCommand(resourcesCmd)
}
