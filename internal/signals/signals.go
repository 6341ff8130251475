package signals

import (
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
)

// #region signals

// Signals holds the interpretable scalar signals derived from one
// observation's text fields. All scores live in [0, 1].
type Signals struct {
	Tokens        []string
	DopamineScore float64
	GoalScore     float64
	CognitiveLoad float64
	EmotionalTone float64
	Mode          string
	Exe           string
}

// #endregion signals

// #region extract

// Extract derives signals from an observation by counting keyword-cue
// hits over its tokenized text blob. Empty text yields zero scores except
// a neutral emotional tone of 0.5.
func Extract(obs observation.Observation) Signals {
	blob := obs.Title + " " + obs.Exe + " " + obs.URL + " " +
		strings.Join(obs.UIALabels, " ") + " " + obs.Mode
	tokens := Tokenize(blob)

	var dopamineHits, goalHits, cogHits, posHits, negHits int
	for _, t := range tokens {
		if _, ok := DopamineCues[t]; ok {
			dopamineHits++
		}
		if _, ok := GoalCues[t]; ok {
			goalHits++
		}
		if _, ok := CognitiveHeavy[t]; ok {
			cogHits++
		}
		if _, ok := EmotionalPositive[t]; ok {
			posHits++
		}
		if _, ok := EmotionalNegative[t]; ok {
			negHits++
		}
	}

	denom := len(tokens)
	if denom == 0 {
		denom = 1
	}

	return Signals{
		Tokens:        tokens,
		DopamineScore: float64(dopamineHits) / float64(denom),
		GoalScore:     float64(goalHits) / float64(denom),
		CognitiveLoad: clamp(0.2 + float64(cogHits)*0.15),
		EmotionalTone: clamp(0.5 + float64(posHits-negHits)*0.05),
		Mode:          strings.ToLower(obs.Mode),
		Exe:           strings.ToLower(obs.Exe),
	}
}

// #endregion extract

// #region productivity

// ProductivityScore collapses signals into a single productivity scalar:
// goal focus plus half the cognitive load, discounted by distraction.
func ProductivityScore(sig Signals) float64 {
	return clamp(sig.GoalScore + 0.5*sig.CognitiveLoad - 0.4*sig.DopamineScore)
}

// #endregion productivity

// #region helpers

// tokenSeparators are folded into spaces before splitting, so path
// components and snake_case words count as separate tokens.
var tokenSeparators = strings.NewReplacer("/", " ", "\\", " ", "_", " ")

// Tokenize splits text on whitespace and path separators, lower-casing
// each token and discarding empties.
func Tokenize(text string) []string {
	fields := strings.Fields(tokenSeparators.Replace(text))
	tokens := make([]string, 0, len(fields))
	for _, raw := range fields {
		tok := strings.ToLower(strings.TrimSpace(raw))
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
