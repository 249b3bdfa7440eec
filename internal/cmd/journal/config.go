// Package journal parses journal tool flags and composes the inspection
// entrypoint.
package journal

import (
	"flag"

	"github.com/louisbranch/groupjournal/internal/platform/config"
)

// Config holds journal tool configuration.
type Config struct {
	DBPath         string `env:"GROUPJOURNAL_DB_PATH"       envDefault:"groupjournal.db"`
	ConversationID string `env:"GROUPJOURNAL_CONVERSATION"`
	LocalAccount   string `env:"GROUPJOURNAL_LOCAL_ACCOUNT"`
	MentionAccount string `env:"GROUPJOURNAL_MENTIONS"`
	Limit          int    `env:"GROUPJOURNAL_LIMIT"         envDefault:"100"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the journal database")
	fs.StringVar(&cfg.ConversationID, "conversation", cfg.ConversationID, "conversation to list records for")
	fs.StringVar(&cfg.LocalAccount, "local-account", cfg.LocalAccount, "local user's account id for source resolution")
	fs.StringVar(&cfg.MentionAccount, "mentions", cfg.MentionAccount, "list records mentioning this account instead of a conversation")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "maximum records to list")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
