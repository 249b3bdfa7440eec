package groupupdate

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDiagnosticAccumulates(t *testing.T) {
	var diag *Diagnostic
	diag = diag.add(stageItemDecode, "first")
	diag = diag.add(stageItemDecode, "second")
	if len(diag.Notes) != 2 {
		t.Fatalf("Notes = %v, want 2 entries", diag.Notes)
	}
	want := "item-decode: first; second"
	if diag.String() != want {
		t.Errorf("String() = %q, want %q", diag.String(), want)
	}
}

func TestNilDiagnostic(t *testing.T) {
	var diag *Diagnostic
	if diag.String() != "" {
		t.Errorf("nil String() = %q, want empty", diag.String())
	}
	// Must not panic.
	diag.Log(zerolog.Nop())
}

func TestDiagnosticLog(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)

	newDiagnostic(stageLegacyDecode, "unresolvable address").Log(logger)

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("log output %q missing warn level", out)
	}
	if !strings.Contains(out, "unresolvable address") {
		t.Errorf("log output %q missing note", out)
	}
}
