package journal

import (
	"flag"
	"io"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "groupjournal.db" {
		t.Errorf("default db path = %q", cfg.DBPath)
	}
	if cfg.Limit != 100 {
		t.Errorf("default limit = %d", cfg.Limit)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GROUPJOURNAL_DB_PATH", "/tmp/env.db")
	t.Setenv("GROUPJOURNAL_CONVERSATION", "conv-env")

	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/flag.db", "-limit", "5"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Errorf("db path = %q, want flag value", cfg.DBPath)
	}
	if cfg.ConversationID != "conv-env" {
		t.Errorf("conversation = %q, want env value", cfg.ConversationID)
	}
	if cfg.Limit != 5 {
		t.Errorf("limit = %d, want 5", cfg.Limit)
	}
}

func TestParseConfigRejectsBadFlag(t *testing.T) {
	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-limit", "many"}); err == nil {
		t.Fatal("expected error for non-numeric limit")
	}
}
