package llm

import (
	"context"
	"errors"
)

// Call records one Complete invocation made against a ScriptClient.
type Call struct {
	Messages []Message
	Params   Params
}

// ScriptClient replays canned responses in order and records every
// call. It backs engine and session tests without touching a real
// backend.
type ScriptClient struct {
	Responses []string
	Err       error
	Calls     []Call
}

func (s *ScriptClient) Complete(_ context.Context, messages []Message, params Params) (string, error) {
	s.Calls = append(s.Calls, Call{Messages: messages, Params: params})
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Calls) > len(s.Responses) {
		return "", errors.New("script client: no response scripted for this call")
	}
	return s.Responses[len(s.Calls)-1], nil
}

// LastCall returns the most recent recorded call, or nil.
func (s *ScriptClient) LastCall() *Call {
	if len(s.Calls) == 0 {
		return nil
	}
	return &s.Calls[len(s.Calls)-1]
}
