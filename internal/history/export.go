// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// WriteMarkdown renders one record as a standalone Markdown document: the
// generated ideas followed by the research resources that informed them.
func WriteMarkdown(rec types.GenerationRecord, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Ideas: %s\n\n", rec.Topic)
	fmt.Fprintf(&b, "Generated %s by %s (%d ideas, %s complexity).\n\n",
		rec.CreatedAt.Format("2006-01-02 15:04"), rec.Model, rec.NumIdeas, rec.Complexity)

	b.WriteString(rec.Ideas)
	if !strings.HasSuffix(rec.Ideas, "\n") {
		b.WriteString("\n")
	}

	b.WriteString("\n## Research Resources\n\n")

	b.WriteString("### Web Results\n\n")
	if rec.Web.Text != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Web.Text)
	} else {
		b.WriteString("(none)\n\n")
	}

	b.WriteString("### Research Papers\n\n")
	switch {
	case len(rec.Papers.Papers) > 0:
		for _, p := range rec.Papers.Papers {
			fmt.Fprintf(&b, "- %s: %s\n", p.Title, p.URL)
		}
	case rec.Papers.Notice != "":
		fmt.Fprintf(&b, "%s\n", rec.Papers.Notice)
	default:
		b.WriteString("(none)\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML writes records as a YAML document.
func WriteYAML(records []types.GenerationRecord, w io.Writer) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatTable writes records as a human-readable table, newest first.
func FormatTable(records []types.GenerationRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No generations recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-5s  %-12s  %s\n", "ID", "Topic", "Ideas", "Complexity", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 84))

	for _, rec := range records {
		topic := rec.Topic
		if len(topic) > 40 {
			topic = topic[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-40s  %-5d  %-12s  %s\n",
			rec.ID, topic, rec.NumIdeas, rec.Complexity, rec.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
}
