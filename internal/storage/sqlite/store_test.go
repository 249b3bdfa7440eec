package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/groupjournal/internal/groupupdate"
	"github.com/louisbranch/groupjournal/internal/history"
	"github.com/louisbranch/groupjournal/internal/id"
	"github.com/louisbranch/groupjournal/internal/identity"
	"github.com/louisbranch/groupjournal/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func taggedRecord(t *testing.T, conversationID string, items ...groupupdate.Item) history.Record {
	t.Helper()
	blob, err := groupupdate.EncodeItems(items)
	if err != nil {
		t.Fatalf("encode items: %v", err)
	}
	return history.Record{
		ID:             id.New(),
		ConversationID: conversationID,
		CreatedAt:      time.Unix(1700000000, 0).UTC(),
		Generation:     history.GenerationTagged,
		ItemsBlob:      blob,
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	flag := true
	records := []history.Record{
		taggedRecord(t, "conv-1",
			groupupdate.NewOtherUserDeclinedInviteFromInviter(identity.OfAccount("3f6c1d2a9b"), "51b0aa04e7"),
		),
		{
			ID:             id.New(),
			ConversationID: "conv-1",
			CreatedAt:      time.Unix(1600000000, 0).UTC(),
			Generation:     history.GenerationLegacyAddress,
			Legacy: groupupdate.LegacyFields{
				LocalUserFlag: &flag,
				RawAddress:    "3f6c1d2a9b",
			},
		},
		{
			ID:             id.New(),
			ConversationID: "conv-1",
			CreatedAt:      time.Unix(1650000000, 0).UTC(),
			Generation:     history.GenerationLegacyList,
			Legacy: groupupdate.LegacyFields{
				RawAddress: "pending:9d2e7f",
				FirstItem: &groupupdate.RemovedInviteItem{
					Invitee:      identity.OfPending("9d2e7f"),
					WasLocalUser: true,
				},
			},
		},
		{
			ID:             id.New(),
			ConversationID: "conv-1",
			CreatedAt:      time.Unix(1710000000, 0).UTC(),
			Generation:     history.GenerationTagged,
			Profile:        &history.ProfileChange{Account: "3f6c1d2a9b", OldName: "Sam", NewName: "Samuel"},
		},
	}

	for _, record := range records {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("put %s: %v", record.ID, err)
		}
	}
	for _, want := range records {
		got, err := store.Get(ctx, want.ID)
		if err != nil {
			t.Fatalf("get %s: %v", want.ID, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("record round trip changed:\n got %#v\nwant %#v", got, want)
		}
	}
}

func TestGetMissingRecord(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "01J9ZC3V9E8Q4N3T3R3YB6M7SJ")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() err = %v, want ErrNotFound", err)
	}
}

func TestPutRejectsInvalidRecord(t *testing.T) {
	store := openTestStore(t)
	record := taggedRecord(t, "conv-1", groupupdate.NewOtherUserInviteRevokedByLocalUser())
	record.ConversationID = ""
	if err := store.Put(context.Background(), record); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestPutIsAppendOnly(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	record := taggedRecord(t, "conv-1", groupupdate.NewOtherUserInviteRevokedByLocalUser())

	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put(ctx, record); err == nil {
		t.Fatal("second put of the same id should fail")
	}
}

func TestListByConversation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for range 5 {
		record := taggedRecord(t, "conv-1", groupupdate.NewUnnamedUserDeclinedInviteFromUnknownUser())
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("put: %v", err)
		}
		ids = append(ids, record.ID)
	}
	other := taggedRecord(t, "conv-2", groupupdate.NewUnnamedUserDeclinedInviteFromUnknownUser())
	if err := store.Put(ctx, other); err != nil {
		t.Fatalf("put other conversation: %v", err)
	}

	first, err := store.ListByConversation(ctx, "conv-1", "", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("first page has %d records, want 3", len(first))
	}
	for i, record := range first {
		if record.ID != ids[i] {
			t.Errorf("page order: record %d = %s, want %s", i, record.ID, ids[i])
		}
	}

	rest, err := store.ListByConversation(ctx, "conv-1", first[len(first)-1].ID, 10)
	if err != nil {
		t.Fatalf("list rest: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("second page has %d records, want 2", len(rest))
	}
	if rest[0].ID != ids[3] || rest[1].ID != ids[4] {
		t.Errorf("second page = %s, %s; want %s, %s", rest[0].ID, rest[1].ID, ids[3], ids[4])
	}
}

func TestDeleteConversation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	kept := taggedRecord(t, "conv-keep",
		groupupdate.NewInviteLinkRequestSequence("3f6c1d2a9b", 1, false))
	dropped := taggedRecord(t, "conv-drop",
		groupupdate.NewInviteLinkRequestSequence("3f6c1d2a9b", 2, true))
	for _, record := range []history.Record{kept, dropped} {
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	if err := store.DeleteConversation(ctx, "conv-drop"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.Get(ctx, dropped.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleted record Get() err = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(ctx, kept.ID); err != nil {
		t.Errorf("kept record Get() err = %v", err)
	}

	mentions, err := store.SearchMentions(ctx, "3f6c1d2a9b", 10)
	if err != nil {
		t.Fatalf("search mentions: %v", err)
	}
	if len(mentions) != 1 || mentions[0].ID != kept.ID {
		t.Errorf("mentions after delete = %v, want only %s", recordIDs(mentions), kept.ID)
	}
}

func TestSearchMentions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	mentioning := make([]string, 0, 3)
	for i := range 3 {
		record := taggedRecord(t, "conv-1",
			groupupdate.NewUnnamedUserInvitesRevokedByOtherUser("3f6c1d2a9b", uint32(i+1)))
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("put: %v", err)
		}
		mentioning = append(mentioning, record.ID)
	}
	unrelated := taggedRecord(t, "conv-1",
		groupupdate.NewUnnamedUserInvitesRevokedByOtherUser("51b0aa04e7", 1))
	if err := store.Put(ctx, unrelated); err != nil {
		t.Fatalf("put unrelated: %v", err)
	}

	got, err := store.SearchMentions(ctx, "3f6c1d2a9b", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search returned %d records, want 2", len(got))
	}
	// Most recent first; ULIDs sort by creation order.
	if got[0].ID != mentioning[2] || got[1].ID != mentioning[1] {
		t.Errorf("search order = %v, want newest two of %v", recordIDs(got), mentioning)
	}
}

func recordIDs(records []history.Record) []string {
	out := make([]string, len(records))
	for i, record := range records {
		out[i] = record.ID
	}
	return out
}
