// Package sqlite provides a SQLite-backed record store implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/groupjournal/internal/errors"
	"github.com/louisbranch/groupjournal/internal/groupupdate"
	"github.com/louisbranch/groupjournal/internal/history"
	"github.com/louisbranch/groupjournal/internal/identity"
	"github.com/louisbranch/groupjournal/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/groupjournal/internal/storage"
	"github.com/louisbranch/groupjournal/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists history records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ storage.RecordStore  = (*Store)(nil)
	_ storage.MentionStore = (*Store)(nil)
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite record store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put inserts one history record and indexes its account mentions. Records
// are append-only; inserting an existing id is an error.
func (s *Store) Put(ctx context.Context, record history.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (
		   id, conversation_id, created_at, generation,
		   local_user_flag, raw_address, removed_invitee, removed_was_local,
		   items_json, profile_json
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.id, row.conversationID, row.createdAt, row.generation,
		row.localUserFlag, row.rawAddress, row.removedInvitee, row.removedWasLocal,
		row.itemsJSON, row.profileJSON,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	for _, account := range record.Mentions() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO record_mentions (record_id, conversation_id, account_id)
			 VALUES (?, ?, ?)
			 ON CONFLICT (record_id, account_id) DO NOTHING`,
			record.ID, record.ConversationID, string(account),
		); err != nil {
			return fmt.Errorf("index mention: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	return nil
}

// Get loads one record by id.
func (s *Store) Get(ctx context.Context, recordID string) (history.Record, error) {
	if err := ctx.Err(); err != nil {
		return history.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return history.Record{}, apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		selectColumns+` FROM records WHERE id = ?`, recordID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return history.Record{}, fmt.Errorf("load record: %w", err)
	}
	return record, nil
}

// ListByConversation returns a conversation's records in id order, starting
// after afterID when set.
func (s *Store) ListByConversation(ctx context.Context, conversationID, afterID string, limit int) ([]history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	if strings.TrimSpace(conversationID) == "" {
		return nil, apperrors.New(apperrors.CodeRecordEmptyConversationID, "conversation id is required")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		selectColumns+` FROM records
		 WHERE conversation_id = ? AND id > ?
		 ORDER BY id
		 LIMIT ?`,
		conversationID, afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// DeleteConversation removes every record of one conversation together with
// its mention index entries.
func (s *Store) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	if strings.TrimSpace(conversationID) == "" {
		return apperrors.New(apperrors.CodeRecordEmptyConversationID, "conversation id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM record_mentions WHERE conversation_id = ?`, conversationID); err != nil {
		return fmt.Errorf("delete mentions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE conversation_id = ?`, conversationID); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// SearchMentions returns the newest records mentioning an account, most
// recent first. Record ids are ULIDs, so descending id order is descending
// creation order.
func (s *Store) SearchMentions(ctx context.Context, account identity.AccountID, limit int) ([]history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	if account == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		selectColumns+` FROM records
		 WHERE id IN (
		   SELECT record_id FROM record_mentions WHERE account_id = ?
		 )
		 ORDER BY id DESC
		 LIMIT ?`,
		string(account), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search mentions: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

const selectColumns = `SELECT
	id, conversation_id, created_at, generation,
	local_user_flag, raw_address, removed_invitee, removed_was_local,
	items_json, profile_json`

type recordRow struct {
	id              string
	conversationID  string
	createdAt       int64
	generation      int
	localUserFlag   sql.NullInt64
	rawAddress      string
	removedInvitee  string
	removedWasLocal sql.NullInt64
	itemsJSON       string
	profileJSON     string
}

func rowFromRecord(record history.Record) (recordRow, error) {
	row := recordRow{
		id:             record.ID,
		conversationID: record.ConversationID,
		createdAt:      toMillis(record.CreatedAt),
		generation:     int(record.Generation),
		rawAddress:     record.Legacy.RawAddress,
		itemsJSON:      string(record.ItemsBlob),
	}
	if record.Legacy.LocalUserFlag != nil {
		row.localUserFlag = sql.NullInt64{Int64: boolToInt(*record.Legacy.LocalUserFlag), Valid: true}
	}
	if first := record.Legacy.FirstItem; first != nil {
		row.removedInvitee = first.Invitee.Address().String()
		row.removedWasLocal = sql.NullInt64{Int64: boolToInt(first.WasLocalUser), Valid: true}
	}
	if record.Profile != nil {
		encoded, err := json.Marshal(record.Profile)
		if err != nil {
			return recordRow{}, fmt.Errorf("encode profile change: %w", err)
		}
		row.profileJSON = string(encoded)
	}
	return row, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(scanner rowScanner) (history.Record, error) {
	var row recordRow
	if err := scanner.Scan(
		&row.id, &row.conversationID, &row.createdAt, &row.generation,
		&row.localUserFlag, &row.rawAddress, &row.removedInvitee, &row.removedWasLocal,
		&row.itemsJSON, &row.profileJSON,
	); err != nil {
		return history.Record{}, err
	}

	record := history.Record{
		ID:             row.id,
		ConversationID: row.conversationID,
		CreatedAt:      fromMillis(row.createdAt),
		Generation:     history.Generation(row.generation),
		Legacy:         groupupdate.LegacyFields{RawAddress: row.rawAddress},
	}
	if row.localUserFlag.Valid {
		flag := row.localUserFlag.Int64 != 0
		record.Legacy.LocalUserFlag = &flag
	}
	if row.removedWasLocal.Valid {
		record.Legacy.FirstItem = &groupupdate.RemovedInviteItem{
			Invitee:      identityFromStored(row.removedInvitee),
			WasLocalUser: row.removedWasLocal.Int64 != 0,
		}
	}
	if row.itemsJSON != "" {
		record.ItemsBlob = []byte(row.itemsJSON)
	}
	if row.profileJSON != "" {
		var profile history.ProfileChange
		if err := json.Unmarshal([]byte(row.profileJSON), &profile); err != nil {
			return history.Record{}, fmt.Errorf("decode profile change: %w", err)
		}
		record.Profile = &profile
	}
	return record, nil
}

func collectRecords(rows *sql.Rows) ([]history.Record, error) {
	var records []history.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// identityFromStored rebuilds an invitee identity from its stored address
// form. Phone-kind addresses never appear in invitee fields; an
// unparseable value degrades to the zero identity.
func identityFromStored(stored string) identity.Identity {
	address, ok := identity.ParseAddress(stored)
	if !ok {
		return identity.Identity{}
	}
	if account, isAccount := address.Account(); isAccount {
		return identity.OfAccount(account)
	}
	if pending, isPending := address.Pending(); isPending {
		return identity.OfPending(pending)
	}
	return identity.Identity{}
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
