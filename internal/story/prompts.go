package story

import (
	"fmt"
	"strings"
)

// NoExtraRequests is the explicit marker sent to the reviser when the
// requester supplied no refinement of their own.
const NoExtraRequests = "No extra user requests."

// PromptBuilder renders the storyteller, judge, and reviser prompts.
// All three derive their structural rules from the same Contract, so
// the generator and the judge always enforce the same story shape.
type PromptBuilder struct {
	Contract Contract
}

func NewPromptBuilder(c Contract) *PromptBuilder {
	return &PromptBuilder{Contract: c}
}

// StoryPrompt builds the system and user messages for first-pass
// generation.
func (b *PromptBuilder) StoryPrompt(req Request) (system, user string) {
	profile := req.Level.Profile()
	supporting := b.Contract.MinNamedCharacters - 1

	var sb strings.Builder
	sb.WriteString("You are a warm, imaginative children's storyteller who tells bedtime stories for kids ages 5 to 10.\n")
	fmt.Fprintf(&sb, "Target style: %s\n", profile.Label)
	writeBullets(&sb, profile.SpokenStyle)
	sb.WriteString("Story structure (you must follow this):\n")
	sb.WriteString("1) Beginning:\n")
	sb.WriteString("   - Introduce the main character with a specific name.\n")
	sb.WriteString("   - Describe one clear setting (e.g., school hallway, playground, bedroom).\n\n")
	sb.WriteString("2) Build-up:\n")
	sb.WriteString("   - Show the main character trying something new or facing a small challenge.\n")
	fmt.Fprintf(&sb, "   - Introduce %d supporting characters with names.\n\n", supporting)
	if b.Contract.RequireConflictScene {
		sb.WriteString("3) Specific Conflict (the climax):\n")
		sb.WriteString("   - Include ONE concrete problem that happens in a clear, visual scene.\n")
		sb.WriteString("   - Examples: going to the wrong classroom, losing a game,\n")
		sb.WriteString("     getting into a conflict with another character, misunderstanding instructions.\n")
		sb.WriteString("   - The problem must actually happen, not just be mentioned as a feeling.\n\n")
	}
	sb.WriteString("4) Resolution:\n")
	sb.WriteString("   - Show how the character(s) solve the problem together.\n")
	sb.WriteString("   - Use simple cause-and-effect (\"because she... then he...\" or \"with help from...\").\n\n")
	sb.WriteString("5) Cozy Ending:\n")
	sb.WriteString("   - End with a calm, sleepy moment (bedtime, peaceful thought).\n")
	if b.Contract.RequireMoral {
		sb.WriteString("   - State the moral in ONE short, simple sentence a child can repeat.\n")
	}
	sb.WriteString("\n")
	b.writeLengthRules(&sb, profile)
	sb.WriteString("Additional content rules:\n")
	sb.WriteString("- The story must be safe and appropriate.\n")
	sb.WriteString("- No violence, horror, or disturbing content.\n")
	sb.WriteString("- Gentle conflict only with a warm resolution.\n")
	sb.WriteString("- Use concrete actions, simple dialogue, and simple sensory details.\n")
	fmt.Fprintf(&sb, "- Include at least %d lines of dialogue with quotation marks.\n", b.Contract.MinDialogueLines)
	fmt.Fprintf(&sb, "- At least %d characters must have names.\n", b.Contract.MinNamedCharacters)
	sb.WriteString("- The moral should clearly match what happens in the story.\n\n")
	sb.WriteString("Before you begin writing, silently check:\n")
	sb.WriteString("- Do you have a named main character?\n")
	sb.WriteString("- Do you have a specific, concrete problem that happens in a scene?\n")
	fmt.Fprintf(&sb, "- Do you include dialogue in at least %d places?\n", b.Contract.MinDialogueLines)
	sb.WriteString("- Do you have a clear, simple moral at the end?\n")
	sb.WriteString("Only begin writing once all four conditions are satisfied.\n\n")
	sb.WriteString("Write the story now. Separate paragraphs with blank lines.\n")

	user = fmt.Sprintf("The user requested this bedtime story:\n%q\n\nPlease tell the story now. Return ONLY the story text.", req.Text)
	return sb.String(), user
}

// JudgePrompt builds the rubric prompt. The judge must answer with
// JSON only; anything else fails closed at parse time.
func (b *PromptBuilder) JudgePrompt(req Request, storyText string) (system, user string) {
	profile := req.Level.Profile()

	var sb strings.Builder
	sb.WriteString("You are a children's book editor reviewing a bedtime story.\n")
	fmt.Fprintf(&sb, "Target reading level: %s\n", profile.Label)
	writeBullets(&sb, profile.SpokenStyle)
	sb.WriteString("You must evaluate these criteria:\n")
	sb.WriteString("1) Plot and conflict:\n")
	sb.WriteString("   - Is there a clear beginning, build-up, specific conflict scene, resolution, and happy ending?\n")
	sb.WriteString("   - Does ONE concrete problem actually happen in a scene (not just general feelings)?\n\n")
	sb.WriteString("2) Characters and dialogue:\n")
	sb.WriteString("   - Is there a named main child character?\n")
	fmt.Fprintf(&sb, "   - Are there at least %d named characters in total, counting the main character?\n", b.Contract.MinNamedCharacters)
	fmt.Fprintf(&sb, "   - Is there dialogue (quoted speech) in at least %d places?\n\n", b.Contract.MinDialogueLines)
	sb.WriteString("3) Moral and tone:\n")
	sb.WriteString("   - Is there a clear, short moral sentence at or near the end, and does it match the story?\n")
	sb.WriteString("   - Is the tone gentle, calm, and bedtime-friendly?\n")
	sb.WriteString("   - Is all content safe for ages 5–10?\n\n")
	sb.WriteString("4) Language simplicity:\n")
	sb.WriteString("   - Are sentences short and easy to follow for the target reading level?\n")
	sb.WriteString("   - Are words common and child-friendly (no overly fancy or academic words)?\n\n")
	sb.WriteString("Return ONLY JSON in this format:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"score\": number,  // 0-10 overall quality\n")
	sb.WriteString("  \"needs_revision\": boolean,\n")
	sb.WriteString("  \"feedback_for_author\": string,\n")
	sb.WriteString("  \"safety_warnings\": string\n")
	sb.WriteString("}\n")
	sb.WriteString("In feedback_for_author, explicitly mention if any of the following are missing:\n")
	sb.WriteString("- specific conflict scene,\n")
	sb.WriteString("- named main character,\n")
	sb.WriteString("- dialogue,\n")
	sb.WriteString("- clear moral sentence,\n")
	sb.WriteString("- or if the language is too complex.\n")

	user = fmt.Sprintf("User request:\n%s\n\nStory:\n%s", req.Text, storyText)
	return sb.String(), user
}

// RevisionPrompt builds the reviser prompt from the prior story, the
// judge's feedback, and the requester's optional refinement.
func (b *PromptBuilder) RevisionPrompt(req Request, storyText string, verdict Verdict, userInstruction string) (system, user string) {
	profile := req.Level.Profile()
	supporting := b.Contract.MinNamedCharacters - 1

	var sb strings.Builder
	sb.WriteString("Revise the bedtime story using the editor's feedback and the user's suggestions.\n")
	fmt.Fprintf(&sb, "Keep the reading level: %s\n", profile.Label)
	writeBullets(&sb, profile.SpokenStyle)
	sb.WriteString("Required structure (do not change this):\n")
	sb.WriteString("- Named main child character.\n")
	fmt.Fprintf(&sb, "- %d supporting named characters.\n", supporting)
	sb.WriteString("- One specific, concrete problem in a scene (the climax).\n")
	fmt.Fprintf(&sb, "- Dialogue in at least %d places.\n", b.Contract.MinDialogueLines)
	sb.WriteString("- Cozy ending with a clear, short moral sentence.\n")
	b.writeLengthRules(&sb, profile)
	sb.WriteString("When revising:\n")
	sb.WriteString("- Strengthen the plot into clear steps (beginning, build-up, conflict, resolution, cozy ending).\n")
	sb.WriteString("- Simplify language to sound like calm bedtime talk.\n")
	sb.WriteString("- Use short sentences and common words.\n")
	sb.WriteString("- Maintain safe, gentle tone.\n")
	sb.WriteString("Return ONLY the revised story text.\n")

	if strings.TrimSpace(userInstruction) == "" {
		userInstruction = NoExtraRequests
	}
	user = fmt.Sprintf(
		"Original request:\n%s\n\nOriginal story:\n%s\n\nEditor feedback:\n%s\n\nUser refinements:\n%s\n\nPlease revise the story to satisfy all requirements.",
		req.Text, storyText, verdict.FeedbackForAuthor, userInstruction,
	)
	return sb.String(), user
}

func (b *PromptBuilder) writeLengthRules(sb *strings.Builder, profile StyleProfile) {
	sb.WriteString("Formatting and length:\n")
	fmt.Fprintf(sb, "- Write the story in %d to %d paragraphs.\n", profile.MinParagraphs, profile.MaxParagraphs)
	fmt.Fprintf(sb, "- Each paragraph should have %s.\n", profile.SentencesPerParagraph)
	sb.WriteString("- Do NOT end the story after only 1 or 2 paragraphs.\n")
}

func writeBullets(sb *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
