package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryPrompt_CarriesContractAndLevel(t *testing.T) {
	b := NewPromptBuilder(DefaultContract())
	req := Request{Text: "a brave little boat", Level: LevelBeginner}

	system, user := b.StoryPrompt(req)

	assert.Contains(t, system, LevelBeginner.Profile().Label)
	assert.Contains(t, system, "at least 2 lines of dialogue")
	assert.Contains(t, system, "At least 3 characters must have names")
	assert.Contains(t, system, "3 to 5 paragraphs")
	assert.Contains(t, system, "ONE concrete problem")
	assert.Contains(t, user, "a brave little boat")
	assert.Contains(t, user, "Return ONLY the story text")
}

func TestJudgePrompt_DemandsJSONOnly(t *testing.T) {
	b := NewPromptBuilder(DefaultContract())
	req := Request{Text: "a sleepy dragon", Level: LevelStandard}

	system, user := b.JudgePrompt(req, "Once upon a time...")

	assert.Contains(t, system, "Return ONLY JSON")
	assert.Contains(t, system, `"score"`)
	assert.Contains(t, system, `"needs_revision"`)
	assert.Contains(t, system, `"feedback_for_author"`)
	assert.Contains(t, system, `"safety_warnings"`)
	assert.Contains(t, system, "at least 3 named characters")
	assert.Contains(t, user, "a sleepy dragon")
	assert.Contains(t, user, "Once upon a time...")
}

func TestJudgeAndStoryPromptsShareContract(t *testing.T) {
	// Tightening the contract must show up on both sides, so the
	// generator and the judge cannot drift apart.
	c := DefaultContract()
	c.MinDialogueLines = 4
	b := NewPromptBuilder(c)
	req := Request{Text: "x", Level: LevelIntermediate}

	storySystem, _ := b.StoryPrompt(req)
	judgeSystem, _ := b.JudgePrompt(req, "y")

	assert.Contains(t, storySystem, "at least 4 lines of dialogue")
	assert.Contains(t, judgeSystem, "at least 4 places")
}

func TestRevisionPrompt_DefaultsUserInstruction(t *testing.T) {
	b := NewPromptBuilder(DefaultContract())
	req := Request{Text: "a shy star", Level: LevelIntermediate}
	verdict := Verdict{FeedbackForAuthor: "Needs a clearer conflict scene."}

	_, user := b.RevisionPrompt(req, "story text", verdict, "")
	assert.Contains(t, user, NoExtraRequests)
	assert.Contains(t, user, "Needs a clearer conflict scene.")

	_, user = b.RevisionPrompt(req, "story text", verdict, "make it sillier")
	assert.Contains(t, user, "make it sillier")
	assert.NotContains(t, user, NoExtraRequests)
}

func TestRevisionPrompt_KeepsReadingLevel(t *testing.T) {
	b := NewPromptBuilder(DefaultContract())
	req := Request{Text: "x", Level: LevelBeginner}

	system, _ := b.RevisionPrompt(req, "story", Verdict{}, "")
	assert.Contains(t, system, LevelBeginner.Profile().Label)
	assert.Contains(t, system, "3 to 5 paragraphs")
}
