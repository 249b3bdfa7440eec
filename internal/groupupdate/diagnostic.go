package groupupdate

import (
	"strings"

	"github.com/rs/zerolog"
)

// Diagnostic collects recoverable anomalies hit while decoding a record.
// Decode functions return one alongside a best-effort value instead of
// failing: historical records must stay renderable even when their
// provenance is ambiguous.
type Diagnostic struct {
	// Stage names the decode stage that produced the notes.
	Stage string
	// Notes holds one human-readable entry per anomaly.
	Notes []string
}

func newDiagnostic(stage, note string) *Diagnostic {
	return &Diagnostic{Stage: stage, Notes: []string{note}}
}

// add appends a note, allocating the diagnostic on first use.
func (d *Diagnostic) add(stage, note string) *Diagnostic {
	if d == nil {
		return newDiagnostic(stage, note)
	}
	d.Notes = append(d.Notes, note)
	return d
}

// Log emits the diagnostic at warn level. No-op for a nil diagnostic.
func (d *Diagnostic) Log(logger zerolog.Logger) {
	if d == nil || len(d.Notes) == 0 {
		return
	}
	logger.Warn().
		Str("stage", d.Stage).
		Strs("notes", d.Notes).
		Msg("Group update record decoded with anomalies")
}

// String joins the notes for error messages and the inspection CLI.
func (d *Diagnostic) String() string {
	if d == nil {
		return ""
	}
	return d.Stage + ": " + strings.Join(d.Notes, "; ")
}
