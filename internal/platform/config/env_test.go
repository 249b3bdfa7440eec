package config

import "testing"

func TestParseEnv(t *testing.T) {
	type cfg struct {
		Path  string `env:"GROUPJOURNAL_TEST_PATH" envDefault:"journal.db"`
		Limit int    `env:"GROUPJOURNAL_TEST_LIMIT" envDefault:"50"`
	}

	t.Run("defaults", func(t *testing.T) {
		var c cfg
		if err := ParseEnv(&c); err != nil {
			t.Fatalf("ParseEnv: %v", err)
		}
		if c.Path != "journal.db" || c.Limit != 50 {
			t.Errorf("defaults = %+v", c)
		}
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("GROUPJOURNAL_TEST_PATH", "/tmp/other.db")
		t.Setenv("GROUPJOURNAL_TEST_LIMIT", "10")
		var c cfg
		if err := ParseEnv(&c); err != nil {
			t.Fatalf("ParseEnv: %v", err)
		}
		if c.Path != "/tmp/other.db" || c.Limit != 10 {
			t.Errorf("parsed = %+v", c)
		}
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("GROUPJOURNAL_TEST_LIMIT", "many")
		var c cfg
		if err := ParseEnv(&c); err == nil {
			t.Fatal("expected error for non-numeric limit")
		}
	})
}
