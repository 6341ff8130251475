package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// recorded observation sequence plus the outcomes the pipeline is
// expected to reproduce.
type Fixture struct {
	Description  string                    `json:"description"`
	Observations []observation.Observation `json:"observations"`
	Expected     Expected                  `json:"expected"`
}

// Expected captures the assertions a fixture makes. Zero-valued fields
// are not checked.
type Expected struct {
	// Algorithm is matched as a prefix, so "kmeans" accepts "kmeans_3".
	Algorithm string `json:"algorithm,omitempty"`
	// Archetypes must each appear among the interpreted cluster labels.
	Archetypes []string `json:"archetypes,omitempty"`
	// Predicted is the short-term forecast's argmax state key.
	Predicted string `json:"predicted,omitempty"`
	// MinInsights is the minimum number of rendered insight lines.
	MinInsights int `json:"min_insights,omitempty"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and parses a fixture JSON file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// #endregion load
