package observation

import (
	"encoding/json"
	"fmt"
	"time"
)

// #region modes

// Modes is the closed set of behavioral modes the classifier may assign.
// "unknown" is the catch-all for low-confidence classifications.
var Modes = []string{
	"coding",
	"gaming",
	"video",
	"chatting",
	"ai_chat",
	"browsing",
	"reading",
	"writing",
	"system",
	"file_management",
	"unknown",
}

// KnownMode reports whether mode is in the closed set.
func KnownMode(mode string) bool {
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// #endregion modes

// #region observation

// Observation is one sampled tick of desktop activity: the foreground
// context plus the mode assigned by the upstream classifier. The Embedding
// field is filled in lazily by the embedding package and reused across
// batch passes.
type Observation struct {
	TS         time.Time
	Mode       string
	Exe        string
	Title      string
	URL        string
	UIALabels  []string
	Confidence float64
	Embedding  []float32
}

// #endregion observation

// #region json

// tsLayout matches the second-resolution ISO timestamps the observer
// writes into its day logs.
const tsLayout = "2006-01-02T15:04:05"

// observationJSON mirrors the day-log line format.
type observationJSON struct {
	TS         string    `json:"ts"`
	Mode       string    `json:"mode"`
	Exe        string    `json:"exe"`
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	UIALabels  []string  `json:"uia_labels,omitempty"`
	Confidence float64   `json:"confidence"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

// UnmarshalJSON decodes a day-log line. A malformed timestamp is an error:
// duration math downstream depends on valid, ordered timestamps.
func (o *Observation) UnmarshalJSON(data []byte) error {
	var raw observationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := parseTimestamp(raw.TS)
	if err != nil {
		return err
	}
	o.TS = ts
	o.Mode = raw.Mode
	o.Exe = raw.Exe
	o.Title = raw.Title
	o.URL = raw.URL
	o.UIALabels = raw.UIALabels
	o.Confidence = raw.Confidence
	o.Embedding = raw.Embedding
	return nil
}

// MarshalJSON encodes an observation in the day-log line format.
func (o Observation) MarshalJSON() ([]byte, error) {
	return json.Marshal(observationJSON{
		TS:         o.TS.Format(tsLayout),
		Mode:       o.Mode,
		Exe:        o.Exe,
		Title:      o.Title,
		URL:        o.URL,
		UIALabels:  o.UIALabels,
		Confidence: o.Confidence,
		Embedding:  o.Embedding,
	})
}

// parseTimestamp accepts second-resolution ISO timestamps, with or
// without a zone offset.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(tsLayout, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return ts, nil
}

// #endregion json
