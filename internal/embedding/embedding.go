package embedding

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
)

// #region layout

// SegmentSize is the width of each named semantic segment.
const SegmentSize = 128

// Segment indices within the embedding vector, in layout order.
const (
	segIntention = iota
	segContext
	segCognitive
	segEmotional
	segDopamineGoal
	segAppSemantics

	segmentCount
)

// Size is the full embedding length: 6 segments of 128 dimensions.
const Size = SegmentSize * segmentCount

// #endregion layout

// #region hashing

// hashSlot maps a token deterministically into a slot of the given
// segment. sha256 keeps slot assignment stable across runs and platforms,
// which cluster stability depends on.
func hashSlot(token string, segment int) int {
	sum := sha256.Sum256([]byte(strconv.Itoa(segment) + ":" + token))
	return int(binary.BigEndian.Uint32(sum[:4]) % SegmentSize)
}

// addToken accumulates a weighted contribution for token at its hashed
// slot within segment.
func addToken(vec []float32, segment int, token string, weight float64) {
	idx := segment*SegmentSize + hashSlot(token, segment)
	vec[idx] += float32(weight)
}

// #endregion hashing

// #region build

// Contribution weights per feature source.
const (
	weightIntentionToken = 0.8
	weightContextToken   = 0.6
	weightAppToken       = 0.5
	weightExe            = 1.0
	weightModeTag        = 0.9
)

// Build converts an observation into an L2-normalized feature-hashed
// vector, returning the derived signals alongside it. Identical text
// fields always produce bit-identical vectors.
func Build(obs observation.Observation) ([]float32, signals.Signals) {
	sig := signals.Extract(obs)
	vec := make([]float32, Size)

	for _, tok := range sig.Tokens {
		addToken(vec, segIntention, tok, weightIntentionToken)
		if strings.HasPrefix(tok, "http") {
			addToken(vec, segContext, tok, weightContextToken)
		}
		addToken(vec, segAppSemantics, tok, weightAppToken)
	}

	if sig.Exe != "" {
		addToken(vec, segAppSemantics, sig.Exe, weightExe)
	}

	for _, label := range obs.UIALabels {
		addToken(vec, segContext, strings.ToLower(label), weightContextToken)
	}

	cognitiveWeight := 1.0 + sig.CognitiveLoad
	for _, tok := range sig.Tokens {
		if _, ok := signals.CognitiveHeavy[tok]; ok {
			addToken(vec, segCognitive, tok, cognitiveWeight)
		}
	}

	addToken(vec, segEmotional, "positive", sig.EmotionalTone)
	addToken(vec, segEmotional, "negative", 1.0-sig.EmotionalTone)

	addToken(vec, segDopamineGoal, "dopamine", sig.DopamineScore)
	addToken(vec, segDopamineGoal, "goal", sig.GoalScore)

	if sig.Mode != "" {
		addToken(vec, segIntention, "mode:"+sig.Mode, weightModeTag)
	}

	normalize(vec)
	return vec, sig
}

// Ensure returns the observation's embedding, computing and memoizing it
// when absent or mis-sized. Signals are derived fresh either way; the
// cached vector is only ever a recomputation of the same inputs, so the
// fill is idempotent.
func Ensure(obs *observation.Observation) ([]float32, signals.Signals) {
	if len(obs.Embedding) == Size {
		return obs.Embedding, signals.Extract(*obs)
	}
	vec, sig := Build(*obs)
	obs.Embedding = vec
	return vec, sig
}

// normalize scales vec to unit Euclidean norm, dividing by 1.0 when the
// raw vector is all-zero.
func normalize(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

// #endregion build
