// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// ideaPromptTmpl is the instruction template sent to the completion API.
// It is parameterized only by topic, context, idea count, and complexity;
// the complexity tier is descriptive text, not a structural constraint.
var ideaPromptTmpl = template.Must(template.New("ideas").Parse(`You are an AI project idea generator. Based on the topic "{{.Topic}}" and the following context:
{{.Context}}
Generate {{.NumIdeas}} unique project ideas at {{.Complexity}} complexity. For each idea provide:
- A title and brief description.
- Key implementation steps (data collection, model development, evaluation).
- A deployment strategy (e.g. web app, mobile app, API).
Format the output as Markdown with each project title as a heading.
`))

// promptData holds the template's free variables. There are no others.
type promptData struct {
	Topic      string
	Context    string
	NumIdeas   int
	Complexity types.Complexity
}

// BuildPrompt renders the instruction template into a single complete
// string. Placeholders are always fully substituted; a render error means
// no request text exists at all — partial renders are never returned.
func BuildPrompt(topic, contextBlock string, numIdeas int, complexity types.Complexity) (string, error) {
	var buf bytes.Buffer
	data := promptData{
		Topic:      topic,
		Context:    contextBlock,
		NumIdeas:   numIdeas,
		Complexity: complexity,
	}
	if err := ideaPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
