// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt assembles the model context block and renders the final
// instruction string sent to the completion API.
package prompt

import (
	"strings"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// Fixed editorial guidance placed around the web-search text. Stable
// framing comes first so the model sees consistent instructions each run;
// the variable, externally-sourced text is confined to a single slot
// between the guidance and the closing constraint.
const (
	guidanceInnovative = "Project ideas should be innovative and quick to build."
	guidanceDomains    = "Consider application domains such as healthcare, agriculture, education, finance, and climate."
	guidanceDeployable = "Ideas must be applicable in the real world and deployable with commonly available infrastructure."
	guidanceSoftware   = "Only software solutions are acceptable."
)

// AssembleContext merges the web-search digest with the fixed guidance
// lines into one ordered context block. The output is deterministic for
// identical inputs and well-formed even when the web text is empty: the
// slot stays in place, it is just blank.
func AssembleContext(web types.WebSummary) string {
	lines := []string{
		guidanceInnovative,
		guidanceDomains,
		guidanceDeployable,
		web.Text,
		guidanceSoftware,
	}
	return strings.Join(lines, "\n")
}
