package story

import (
	"encoding/json"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Verdict is the judge's structured review of one story version. A
// story is never considered judged until it is paired with a Verdict,
// and the pair is always replaced together.
type Verdict struct {
	Score             float64 `json:"score"` // 0–10 overall quality
	NeedsRevision     bool    `json:"needs_revision"`
	FeedbackForAuthor string  `json:"feedback_for_author"`
	SafetyWarnings    string  `json:"safety_warnings"`
}

const verdictSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "score": {"type": "number"},
    "needs_revision": {"type": "boolean"},
    "feedback_for_author": {"type": "string"},
    "safety_warnings": {"type": "string"}
  }
}`

var verdictSchema = jsonschema.MustCompileString("verdict.schema.json", verdictSchemaJSON)

// FallbackVerdict is the fail-closed verdict substituted when the
// judge's output cannot be parsed. An unreadable judgment must never
// count as a pass, so it scores zero and demands revision.
func FallbackVerdict() Verdict {
	return Verdict{
		Score:         0,
		NeedsRevision: true,
		FeedbackForAuthor: "Could not parse judge response. Recommend a clearer plot with a specific conflict scene, " +
			"named characters, dialogue, simpler language, and an explicit moral.",
		SafetyWarnings: "Judge output could not be parsed.",
	}
}

// ParseVerdict decodes the judge's raw output into a Verdict. The
// returned bool reports whether the output parsed; when it did not,
// the returned Verdict is the fail-closed fallback. Keys the judge
// omitted default to zero values, matching a parsed-but-sparse
// verdict; keys of the wrong type fail schema validation and close
// the gate entirely.
func ParseVerdict(raw string) (Verdict, bool) {
	text := stripCodeFence(raw)

	var shape any
	if err := json.Unmarshal([]byte(text), &shape); err != nil {
		return FallbackVerdict(), false
	}
	if err := verdictSchema.Validate(shape); err != nil {
		return FallbackVerdict(), false
	}
	if _, ok := shape.(map[string]any); !ok {
		return FallbackVerdict(), false
	}

	var v Verdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return FallbackVerdict(), false
	}
	v.Score = clampScore(v.Score)
	return v, true
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// stripCodeFence removes a surrounding markdown code fence, which
// chat models like to wrap JSON in despite instructions.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
