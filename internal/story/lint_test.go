package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const wellFormedStory = `Mila the fox lived near a quiet pond. Every morning she waved to her friend Ben the beaver. The sun felt warm on her fur.

One day Mila and Ben planned a picnic with Tilly the turtle. Mila carried the basket. Ben carried the blanket.

At the pond, the basket tipped and rolled into the water. "Oh no, our lunch!" cried Mila. "Don't worry, I can swim!" said Ben.

Ben dove in and pushed the basket back to shore. Because Ben helped, the picnic was saved. Tilly shared her berries too.

That night Mila curled up in her den, happy and sleepy. Friends who help each other make every day better.`

func TestLint_WellFormedStoryPasses(t *testing.T) {
	res := Lint(wellFormedStory, LevelBeginner, DefaultContract())
	assert.Empty(t, res.Issues)
	assert.Equal(t, 1.0, res.Score)
}

func TestLint_EmptyStory(t *testing.T) {
	res := Lint("   ", LevelBeginner, DefaultContract())
	assert.Equal(t, 0.0, res.Score)
	assert.Contains(t, res.Issues, "empty_story")
}

func TestLint_FlagsMissingDialogue(t *testing.T) {
	noDialogue := strings.ReplaceAll(wellFormedStory, `"`, "")
	res := Lint(noDialogue, LevelBeginner, DefaultContract())
	assert.Contains(t, res.Issues, "missing_dialogue")
	assert.Less(t, res.Score, 1.0)
}

func TestLint_FlagsTooFewParagraphs(t *testing.T) {
	short := "Mila said \"hi\" to Ben. \"Hello,\" said Ben. The moral is to be kind."
	res := Lint(short, LevelStandard, DefaultContract())
	assert.Contains(t, res.Issues, "too_few_paragraphs")
}

func TestLint_CountsCurlyQuotes(t *testing.T) {
	curly := strings.ReplaceAll(wellFormedStory, `"`, "“")
	res := Lint(curly, LevelBeginner, DefaultContract())
	assert.NotContains(t, res.Issues, "missing_dialogue")
}
