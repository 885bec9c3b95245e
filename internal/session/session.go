// Package session implements the budgeted customization loop that
// sits on top of the story pipeline: a finite number of
// requester-initiated edits, each re-invoking the pipeline or the
// reviser, ending in a final story/verdict pair.
package session

import (
	"context"
	"fmt"
	"strings"

	"bedtime/internal/engine"
	"bedtime/internal/story"

	"github.com/google/uuid"
)

// Session is the mutable state of one customization run. Story and
// Verdict are only ever replaced together; a story without the
// verdict computed from it never exists here.
type Session struct {
	ID      string
	Request story.Request
	Story   string
	Verdict story.Verdict
	Used    int
	Max     int
}

func New(req story.Request, storyText string, verdict story.Verdict, max int) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Request: req,
		Story:   storyText,
		Verdict: verdict,
		Used:    0,
		Max:     max,
	}
}

// Remaining is the number of customizations still available.
func (s *Session) Remaining() int {
	return s.Max - s.Used
}

// adopt replaces the story/verdict pair atomically.
func (s *Session) adopt(text string, v story.Verdict) {
	s.Story = text
	s.Verdict = v
}

// Option is one selectable menu choice.
type Option struct {
	Key   string
	Label string
}

// Prompter is the requester I/O boundary. Choose re-solicits until
// the answer matches one of the options, so the loop only ever sees
// valid keys; FreeText may return an empty string, which actions
// treat as a free cancellation.
type Prompter interface {
	Choose(prompt string, options []Option) (string, error)
	FreeText(prompt string) (string, error)
	Say(text string)
}

const (
	actionAccept        = "1"
	actionSuggest       = "2"
	actionChangeLevel   = "3"
	actionChangeRequest = "4"
)

var menuOptions = []Option{
	{Key: actionAccept, Label: "I'm happy with this story! (exit)"},
	{Key: actionSuggest, Label: "Add suggestions to improve this story."},
	{Key: actionChangeLevel, Label: "Change the reading level & regenerate."},
	{Key: actionChangeRequest, Label: "Change the original story request & regenerate."},
}

// LevelOptions is the reading-level menu, shared with the CLI's
// initial level selection.
var LevelOptions = []Option{
	{Key: "1", Label: "Very simple (ages 5–6)"},
	{Key: "2", Label: "Simple (ages 7–8)"},
	{Key: "3", Label: "Standard (ages 9–10)"},
}

// Loop drives the customization menu until the requester accepts the
// story or the budget runs out.
type Loop struct {
	pipeline  *engine.Pipeline
	prompter  Prompter
	showJudge bool
	report    *Report
}

func NewLoop(pipeline *engine.Pipeline, prompter Prompter, showJudge bool, report *Report) *Loop {
	return &Loop{
		pipeline:  pipeline,
		prompter:  prompter,
		showJudge: showJudge,
		report:    report,
	}
}

// Run iterates the menu. Each accepted (non-empty) action consumes
// exactly one unit of budget; cancellations are free. The loop halts
// in at most Max+1 iterations: every pass either returns or strictly
// decreases the remaining budget.
func (l *Loop) Run(ctx context.Context, s *Session) error {
	for {
		remaining := s.Remaining()
		if remaining <= 0 {
			l.prompter.Say("\nYou've reached the maximum number of customizations.")
			l.prompter.Say("Keeping the current story as your final version. 🌟")
			return nil
		}

		choice, err := l.prompter.Choose(
			fmt.Sprintf("\nWhat would you like to do next?\nYou have %d customization(s) remaining.", remaining),
			menuOptions,
		)
		if err != nil {
			return err
		}

		var acted bool
		switch choice {
		case actionAccept:
			return nil
		case actionSuggest:
			acted, err = l.suggest(ctx, s)
		case actionChangeLevel:
			acted, err = l.changeLevel(ctx, s)
		case actionChangeRequest:
			acted, err = l.changeRequest(ctx, s)
		}
		if err != nil {
			return err
		}
		if !acted {
			continue
		}

		l.showStory(s)
	}
}

// suggest revises the current story with the requester's free-text
// instruction. An empty instruction cancels for free.
func (l *Loop) suggest(ctx context.Context, s *Session) (bool, error) {
	text, err := l.prompter.FreeText(
		"\nHow would you like to change this story?\n" +
			"For example: 'make it sillier', 'shorter', 'add a dragon friend', etc.\n" +
			"Your suggestions (or press Enter to cancel): ")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(text) == "" {
		l.prompter.Say("No suggestions provided. Keeping the story as is.")
		return false, nil
	}

	l.prompter.Say("\nRevising your story based on your suggestions...")
	revised, err := l.pipeline.Revise(ctx, s.Request, s.Story, s.Verdict, text)
	if err != nil {
		return false, err
	}
	verdict, err := l.pipeline.Review(ctx, s.Request, revised)
	if err != nil {
		return false, err
	}

	s.Used++
	s.adopt(revised, verdict)
	l.record("suggest", s)
	return true, nil
}

// changeLevel picks a new reading level and regenerates. There is no
// cancellation path: a level must be chosen, and the action always
// consumes budget.
func (l *Loop) changeLevel(ctx context.Context, s *Session) (bool, error) {
	key, err := l.prompter.Choose("\nOkay! Let's pick a new reading level.\nChoose a reading level:", LevelOptions)
	if err != nil {
		return false, err
	}
	level, err := story.ParseReadingLevel(key)
	if err != nil {
		return false, err
	}

	l.prompter.Say("\nRegenerating the story with the new reading level...")
	req := story.Request{Text: s.Request.Text, Level: level}
	text, verdict, err := l.pipeline.Run(ctx, req)
	if err != nil {
		return false, err
	}

	s.Used++
	s.Request = req
	s.adopt(text, verdict)
	l.record("change_level", s)
	return true, nil
}

// changeRequest replaces the story request wholesale and regenerates
// at the unchanged level. An empty request cancels for free.
func (l *Loop) changeRequest(ctx context.Context, s *Session) (bool, error) {
	text, err := l.prompter.FreeText(
		"\nWhat would you like your new main story request to be?\n" +
			"You can completely change it or build on your previous idea.\n" +
			"New main request (or press Enter to cancel): ")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(text) == "" {
		l.prompter.Say("No new request provided. Keeping the previous request.")
		return false, nil
	}

	l.prompter.Say("\nRegenerating the story with your new request...")
	req := story.Request{Text: strings.TrimSpace(text), Level: s.Request.Level}
	storyText, verdict, err := l.pipeline.Run(ctx, req)
	if err != nil {
		return false, err
	}

	s.Used++
	s.Request = req
	s.adopt(storyText, verdict)
	l.record("change_request", s)
	return true, nil
}

func (l *Loop) showStory(s *Session) {
	l.prompter.Say("\n========== UPDATED BEDTIME STORY ==========\n")
	l.prompter.Say(s.Story)
	l.prompter.Say("\n==========================================\n")
	if l.showJudge {
		l.prompter.Say(JudgeSummary(s))
	}
}

func (l *Loop) record(action string, s *Session) {
	if l.report != nil {
		l.report.AddVersion(action, s)
	}
}

// JudgeSummary renders the behind-the-scenes judge view of the
// session's current story, including the local structural lint.
func JudgeSummary(s *Session) string {
	var sb strings.Builder
	sb.WriteString("Judge Summary:\n")
	fmt.Fprintf(&sb, "- Score: %.1f\n", s.Verdict.Score)
	fmt.Fprintf(&sb, "- Needs revision? %t\n", s.Verdict.NeedsRevision)
	fmt.Fprintf(&sb, "- Safety notes: %s\n", s.Verdict.SafetyWarnings)
	fmt.Fprintf(&sb, "- Feedback: %s\n", s.Verdict.FeedbackForAuthor)

	lint := story.Lint(s.Story, s.Request.Level, story.DefaultContract())
	if len(lint.Issues) > 0 {
		fmt.Fprintf(&sb, "- Structure check: %s\n", strings.Join(lint.Issues, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
