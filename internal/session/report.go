package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// VersionRecord captures one judged story version and the action that
// produced it.
type VersionRecord struct {
	Version        int     `json:"version"`
	Action         string  `json:"action"`
	Level          string  `json:"level"`
	Request        string  `json:"request"`
	Story          string  `json:"story"`
	Score          float64 `json:"score"`
	NeedsRevision  bool    `json:"needs_revision"`
	SafetyWarnings string  `json:"safety_warnings,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type ReportSummary struct {
	VersionCount       int     `json:"version_count"`
	CustomizationsUsed int     `json:"customizations_used"`
	FinalScore         float64 `json:"final_score"`
}

// Report is the JSON transcript of a session: every story version in
// chronological order plus a closing summary. Written only when the
// requester asks for it.
type Report struct {
	SchemaVersion string          `json:"schema_version"`
	SessionID     string          `json:"session_id"`
	StartedAt     string          `json:"started_at"`
	Versions      []VersionRecord `json:"versions"`
	Summary       ReportSummary   `json:"summary"`
}

func NewReport(sessionID string) *Report {
	return &Report{
		SchemaVersion: "v1",
		SessionID:     sessionID,
		StartedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// AddVersion appends the session's current story/verdict pair.
func (r *Report) AddVersion(action string, s *Session) {
	r.Versions = append(r.Versions, VersionRecord{
		Version:        len(r.Versions) + 1,
		Action:         action,
		Level:          s.Request.Level.String(),
		Request:        s.Request.Text,
		Story:          s.Story,
		Score:          s.Verdict.Score,
		NeedsRevision:  s.Verdict.NeedsRevision,
		SafetyWarnings: s.Verdict.SafetyWarnings,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// Save finalizes the summary and writes the report as indented JSON.
func (r *Report) Save(path string, s *Session) error {
	r.Summary = ReportSummary{
		VersionCount:       len(r.Versions),
		CustomizationsUsed: s.Used,
		FinalScore:         s.Verdict.Score,
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0644)
}
