// Package engine composes story generation, judging, and revision
// into a single deterministic pipeline over the text-generation
// client. It holds no session state; every call takes explicit
// inputs and returns a fresh story/verdict pair.
package engine

import (
	"context"

	"bedtime/internal/llm"
	"bedtime/internal/story"
)

// Pipeline runs generate → judge → (single) revise → re-judge. The
// storyteller and reviser share one client; the judge may run on a
// different model behind its own.
type Pipeline struct {
	storyClient llm.Client
	judgeClient llm.Client
	prompts     *story.PromptBuilder
}

func New(storyClient, judgeClient llm.Client) *Pipeline {
	return &Pipeline{
		storyClient: storyClient,
		judgeClient: judgeClient,
		prompts:     story.NewPromptBuilder(story.DefaultContract()),
	}
}

// Tell generates a first-pass story for the request.
func (p *Pipeline) Tell(ctx context.Context, req story.Request) (string, error) {
	system, user := p.prompts.StoryPrompt(req)
	return p.storyClient.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.StoryParams)
}

// Review judges a story version. A transport failure is an error; a
// judge response that cannot be parsed is not — it comes back as the
// fail-closed verdict, because an unreadable judgment must never be
// read as a pass.
func (p *Pipeline) Review(ctx context.Context, req story.Request, storyText string) (story.Verdict, error) {
	system, user := p.prompts.JudgePrompt(req, storyText)
	raw, err := p.judgeClient.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.JudgeParams)
	if err != nil {
		return story.Verdict{}, err
	}
	verdict, _ := story.ParseVerdict(raw)
	return verdict, nil
}

// Revise rewrites the story wholesale using the judge's feedback and
// an optional requester refinement.
func (p *Pipeline) Revise(ctx context.Context, req story.Request, storyText string, verdict story.Verdict, userInstruction string) (string, error) {
	system, user := p.prompts.RevisionPrompt(req, storyText, verdict, userInstruction)
	return p.storyClient.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.StoryParams)
}

// Run produces a judged story: generate, review, and if the judge
// asks for changes, revise exactly once and review again. The result
// is returned unconditionally — a second verdict that still wants
// revision is a normal, final outcome, bounding cost and latency at
// one revision pass per generation.
func (p *Pipeline) Run(ctx context.Context, req story.Request) (string, story.Verdict, error) {
	text, err := p.Tell(ctx, req)
	if err != nil {
		return "", story.Verdict{}, err
	}
	verdict, err := p.Review(ctx, req, text)
	if err != nil {
		return "", story.Verdict{}, err
	}

	if verdict.NeedsRevision {
		revised, err := p.Revise(ctx, req, text, verdict, "")
		if err != nil {
			return "", story.Verdict{}, err
		}
		text = revised
		verdict, err = p.Review(ctx, req, text)
		if err != nil {
			return "", story.Verdict{}, err
		}
	}

	return text, verdict, nil
}
