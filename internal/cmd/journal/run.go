package journal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/louisbranch/groupjournal/internal/groupupdate"
	"github.com/louisbranch/groupjournal/internal/history"
	"github.com/louisbranch/groupjournal/internal/identity"
	"github.com/louisbranch/groupjournal/internal/storage/sqlite"
)

// Run opens the record store and writes the requested listing to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	local := groupupdate.LocalIdentity{Account: identity.AccountID(cfg.LocalAccount)}

	if cfg.MentionAccount != "" {
		records, err := store.SearchMentions(ctx, identity.AccountID(cfg.MentionAccount), cfg.Limit)
		if err != nil {
			return fmt.Errorf("search mentions: %w", err)
		}
		return writeListing(out, records, local, logger)
	}

	if cfg.ConversationID == "" {
		return fmt.Errorf("either -conversation or -mentions is required")
	}
	records, err := store.ListByConversation(ctx, cfg.ConversationID, "", cfg.Limit)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	return writeListing(out, records, local, logger)
}

// writeListing prints one line per record: id, generation, resolved source,
// and the notification sender or profile summary where one exists. Decode
// anomalies go to the logger, not the listing; the record line still
// appears with whatever could be resolved.
func writeListing(out io.Writer, records []history.Record, local groupupdate.LocalIdentity, logger zerolog.Logger) error {
	for _, record := range records {
		line := describeRecord(record, local, logger)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write listing: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "%d record(s)\n", len(records)); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}

func describeRecord(record history.Record, local groupupdate.LocalIdentity, logger zerolog.Logger) string {
	source, diag := record.Source(local)
	diag.Log(logger.With().Str("record_id", record.ID).Logger())

	line := fmt.Sprintf("%s gen=%d source=%s", record.ID, record.Generation, source)
	if record.Profile != nil {
		return line + " profile=" + record.Profile.Summary()
	}

	items, _ := record.Items()
	for _, item := range items {
		if sender, ok := groupupdate.NotificationSender(item); ok {
			line += " sender=" + sender.Address().String()
			break
		}
	}
	return line
}
