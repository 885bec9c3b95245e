package engine

import (
	"context"
	"errors"
	"testing"

	"bedtime/internal/llm"
	"bedtime/internal/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingVerdict = `{"score": 9, "needs_revision": false, "feedback_for_author": "Great.", "safety_warnings": ""}`
const failingVerdict = `{"score": 4, "needs_revision": true, "feedback_for_author": "Add dialogue.", "safety_warnings": ""}`

func testRequest() story.Request {
	return story.Request{Text: "a brave little boat", Level: story.LevelIntermediate}
}

func TestRun_PassingVerdictSkipsRevision(t *testing.T) {
	client := &llm.ScriptClient{Responses: []string{"the story", passingVerdict}}
	p := New(client, client)

	text, verdict, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "the story", text)
	assert.False(t, verdict.NeedsRevision)
	assert.Equal(t, 9.0, verdict.Score)
	assert.Len(t, client.Calls, 2)
}

func TestRun_RevisesExactlyOnce(t *testing.T) {
	client := &llm.ScriptClient{Responses: []string{
		"first draft",
		failingVerdict,
		"revised draft",
		passingVerdict,
	}}
	p := New(client, client)

	text, verdict, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "revised draft", text)
	assert.False(t, verdict.NeedsRevision)
	assert.Len(t, client.Calls, 4)
}

func TestRun_StillFailingVerdictIsFinal(t *testing.T) {
	// Even when the re-judged verdict still wants changes, the
	// pipeline returns it as a normal outcome: one revision pass only.
	client := &llm.ScriptClient{Responses: []string{
		"first draft",
		failingVerdict,
		"revised draft",
		failingVerdict,
	}}
	p := New(client, client)

	text, verdict, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "revised draft", text)
	assert.True(t, verdict.NeedsRevision)
	assert.Len(t, client.Calls, 4, "no second revision attempt")
}

func TestRun_TransportErrorPropagates(t *testing.T) {
	boom := errors.New("rate limited")
	client := &llm.ScriptClient{Err: boom}
	p := New(client, client)

	_, _, err := p.Run(context.Background(), testRequest())
	require.ErrorIs(t, err, boom)
}

func TestReview_MalformedJudgeOutputFailsClosed(t *testing.T) {
	client := &llm.ScriptClient{Responses: []string{"I loved it, five stars!"}}
	p := New(client, client)

	verdict, err := p.Review(context.Background(), testRequest(), "the story")
	require.NoError(t, err, "parse failure is recovered, not surfaced")

	assert.Equal(t, 0.0, verdict.Score)
	assert.True(t, verdict.NeedsRevision)
	assert.NotEmpty(t, verdict.SafetyWarnings)
}

func TestReview_UsesJudgeSamplingProfile(t *testing.T) {
	client := &llm.ScriptClient{Responses: []string{passingVerdict}}
	p := New(client, client)

	_, err := p.Review(context.Background(), testRequest(), "the story")
	require.NoError(t, err)

	call := client.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, llm.JudgeParams, call.Params)
	assert.Equal(t, 0.0, call.Params.Temperature)
}

func TestTell_UsesStorySamplingProfile(t *testing.T) {
	client := &llm.ScriptClient{Responses: []string{"the story"}}
	p := New(client, client)

	_, err := p.Tell(context.Background(), testRequest())
	require.NoError(t, err)

	call := client.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, llm.StoryParams, call.Params)
	require.Len(t, call.Messages, 2)
	assert.Equal(t, llm.RoleSystem, call.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, call.Messages[1].Role)
}

func TestRevise_DefaultsToNoExtraRequestsMarker(t *testing.T) {
	client := &llm.ScriptClient{Responses: []string{"revised"}}
	p := New(client, client)

	_, err := p.Revise(context.Background(), testRequest(), "old story", story.Verdict{FeedbackForAuthor: "fix it"}, "")
	require.NoError(t, err)

	call := client.LastCall()
	require.NotNil(t, call)
	assert.Contains(t, call.Messages[1].Content, story.NoExtraRequests)
	assert.Contains(t, call.Messages[1].Content, "fix it")
	assert.Contains(t, call.Messages[1].Content, "old story")
}
