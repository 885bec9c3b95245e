package story

import "fmt"

// ReadingLevel selects one of three fixed style/length/vocabulary
// profiles. It never changes implicitly; switching levels always goes
// through an explicit customization and a full regeneration.
type ReadingLevel int

const (
	LevelBeginner     ReadingLevel = iota + 1 // ages 5–6
	LevelIntermediate                         // ages 7–8
	LevelStandard                             // ages 9–10
)

// StyleProfile holds the per-level language and length constraints
// consumed by the storyteller, reviser, and judge prompts alike.
type StyleProfile struct {
	// Label is the one-line reading-level description.
	Label string
	// SpokenStyle are the bullet rules that keep the voice sounding
	// like an adult talking to a child of this age.
	SpokenStyle []string
	// MinParagraphs..MaxParagraphs bound the story length.
	MinParagraphs int
	MaxParagraphs int
	// SentencesPerParagraph describes the expected paragraph density.
	SentencesPerParagraph string
}

var profiles = map[ReadingLevel]StyleProfile{
	LevelBeginner: {
		Label: "very simple language for ages 5–6, with short sentences (6–10 words) and very basic everyday vocabulary",
		SpokenStyle: []string{
			"Pretend you are talking out loud to a 5-year-old.",
			"Use very short, simple sentences (6–10 words).",
			"Use only familiar everyday words.",
			"Keep the tone warm, gentle, and playful.",
		},
		MinParagraphs:         3,
		MaxParagraphs:         5,
		SentencesPerParagraph: "at least 3 short sentences",
	},
	LevelIntermediate: {
		Label: "simple language for ages 7–8, with mostly short sentences (8–14 words) and easy everyday vocabulary",
		SpokenStyle: []string{
			"Pretend you are talking to a 7-year-old.",
			"Use short sentences (8–14 words) and simple vocabulary.",
			"Avoid complex clauses.",
			"Keep the tone friendly and clear.",
		},
		MinParagraphs:         4,
		MaxParagraphs:         6,
		SentencesPerParagraph: "3–5 sentences",
	},
	LevelStandard: {
		Label: "clear spoken language for ages 9–10, still gentle, with mostly short sentences and no literary or complex phrasing",
		SpokenStyle: []string{
			"Pretend you are talking to a 9-year-old.",
			"Use mostly short, clear spoken sentences.",
			"Avoid overly poetic or complex language.",
			"Keep the tone friendly and easy to follow.",
		},
		MinParagraphs:         5,
		MaxParagraphs:         7,
		SentencesPerParagraph: "3–6 sentences",
	},
}

// Profile returns the style profile for the level, falling back to
// the intermediate profile for unknown values.
func (l ReadingLevel) Profile() StyleProfile {
	if p, ok := profiles[l]; ok {
		return p
	}
	return profiles[LevelIntermediate]
}

func (l ReadingLevel) String() string {
	switch l {
	case LevelBeginner:
		return "beginner"
	case LevelIntermediate:
		return "intermediate"
	case LevelStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// AgeBand returns the target age range for the level.
func (l ReadingLevel) AgeBand() string {
	switch l {
	case LevelBeginner:
		return "5–6"
	case LevelIntermediate:
		return "7–8"
	case LevelStandard:
		return "9–10"
	default:
		return ""
	}
}

// Valid reports whether l is one of the three defined levels.
func (l ReadingLevel) Valid() bool {
	_, ok := profiles[l]
	return ok
}

// ParseReadingLevel accepts either the menu digit ("1".."3") or the
// level name.
func ParseReadingLevel(s string) (ReadingLevel, error) {
	switch s {
	case "1", "beginner":
		return LevelBeginner, nil
	case "2", "intermediate":
		return LevelIntermediate, nil
	case "3", "standard":
		return LevelStandard, nil
	default:
		return 0, fmt.Errorf("unknown reading level: %q", s)
	}
}

// Request is the requester's story description plus the current
// reading level. It is replaced wholesale on a change-request
// customization, never edited in place.
type Request struct {
	Text  string
	Level ReadingLevel
}
