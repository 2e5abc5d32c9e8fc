// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// RequestFile is the on-disk representation of a batch of generation
// requests. A user can keep a topics file under version control and rerun
// it as providers or models improve.
type RequestFile struct {
	Requests []RequestParams `yaml:"requests"`
}

// RequestParams stores one request in a serializable form. Zero values
// take the same defaults as the CLI flags.
type RequestParams struct {
	Topic      string `yaml:"topic"`
	NumIdeas   int    `yaml:"num_ideas,omitempty"`
	Complexity string `yaml:"complexity,omitempty"`
}

// ToRequest converts stored params into a Request, applying defaults:
// five ideas at Intermediate complexity.
func (p RequestParams) ToRequest() types.Request {
	req := types.Request{
		Topic:      p.Topic,
		NumIdeas:   p.NumIdeas,
		Complexity: types.Complexity(p.Complexity),
	}
	if req.NumIdeas == 0 {
		req.NumIdeas = 5
	}
	if req.Complexity == "" {
		req.Complexity = types.Intermediate
	}
	return req
}

// ReadRequestFile loads a batch request file from disk.
func ReadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	if len(rf.Requests) == 0 {
		return nil, fmt.Errorf("request file %s contains no requests", path)
	}
	return &rf, nil
}

// ResultFile is the on-disk summary of a batch run.
type ResultFile struct {
	Records []types.GenerationRecord `yaml:"records"`
	Summary BatchSummary             `yaml:"summary"`
}

// BatchSummary stores run statistics and a timestamp.
type BatchSummary struct {
	Total     int       `yaml:"total"`
	Generated int       `yaml:"generated"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves batch records and their summary to a YAML file.
func WriteResultFile(path string, records []types.GenerationRecord, failed int) error {
	rf := ResultFile{
		Records: records,
		Summary: BatchSummary{
			Total:     len(records) + failed,
			Generated: len(records),
			Failed:    failed,
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
