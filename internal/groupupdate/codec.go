package groupupdate

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/groupjournal/internal/errors"
)

// itemEnvelope is the wire shape of one generation-3 item: the durable tag
// plus the tag's payload object. Variants without a payload omit it.
type itemEnvelope struct {
	Type    ItemType        `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const stageItemDecode = "item-decode"

// EncodeItems serializes an ordered item sequence to its generation-3
// storage form. Unrecognized items are written back from their retained raw
// encoding so a record that passed through an older build loses nothing.
func EncodeItems(items []Item) ([]byte, error) {
	encoded := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		if item.Type == TypeUnrecognized {
			if len(item.Raw) == 0 {
				return nil, apperrors.WithMetadata(apperrors.CodeItemMissingRaw,
					fmt.Sprintf("unrecognized item %d has no retained encoding", i), nil)
			}
			encoded = append(encoded, item.Raw)
			continue
		}
		payload, err := marshalPayload(item)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeItemEncodeFailed,
				fmt.Sprintf("encode item %d (%s)", i, item.Type), err)
		}
		envelope, err := json.Marshal(itemEnvelope{Type: item.Type, Payload: payload})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeItemEncodeFailed,
				fmt.Sprintf("encode item %d (%s)", i, item.Type), err)
		}
		encoded = append(encoded, envelope)
	}
	blob, err := json.Marshal(encoded)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeItemEncodeFailed, "encode item sequence", err)
	}
	return blob, nil
}

// DecodeItems deserializes a generation-3 blob back into an item sequence.
//
// An unknown tag or a malformed single item degrades to an unrecognized
// item carrying its raw encoding; sibling items are unaffected. Only a
// structurally corrupt envelope fails the whole sequence, returning nil
// items and a diagnostic rather than an error, since the caller treats the
// record as non-renderable rather than failing.
func DecodeItems(blob []byte) ([]Item, *Diagnostic) {
	if len(blob) == 0 {
		return nil, nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(blob, &elements); err != nil {
		return nil, newDiagnostic(stageItemDecode, fmt.Sprintf("corrupt item sequence: %v", err))
	}

	items := make([]Item, 0, len(elements))
	var diag *Diagnostic
	for i, element := range elements {
		var envelope itemEnvelope
		if err := json.Unmarshal(element, &envelope); err != nil {
			diag = diag.add(stageItemDecode, fmt.Sprintf("item %d: corrupt envelope: %v", i, err))
			items = append(items, unrecognizedItem(element))
			continue
		}
		item, err := decodeKnownItem(envelope)
		if err != nil {
			diag = diag.add(stageItemDecode, fmt.Sprintf("item %d (%s): %v", i, envelope.Type, err))
			items = append(items, unrecognizedItem(element))
			continue
		}
		if item.Type == TypeUnrecognized {
			item = unrecognizedItem(element)
		}
		items = append(items, item)
	}
	return items, diag
}

func unrecognizedItem(raw json.RawMessage) Item {
	retained := make(json.RawMessage, len(raw))
	copy(retained, raw)
	return Item{Type: TypeUnrecognized, Raw: retained}
}

func marshalPayload(item Item) (json.RawMessage, error) {
	var payload any
	switch {
	case item.RequestSequence != nil:
		payload = item.RequestSequence
	case item.Promotion != nil:
		payload = item.Promotion
	case item.Decline != nil:
		payload = item.Decline
	case item.Revocation != nil:
		payload = item.Revocation
	default:
		return nil, nil
	}
	return json.Marshal(payload)
}

// decodeKnownItem maps a tagged envelope to a typed item. An unknown tag
// returns a bare unrecognized item; the caller attaches the raw encoding.
func decodeKnownItem(envelope itemEnvelope) (Item, error) {
	item := Item{Type: envelope.Type}
	switch envelope.Type {
	case TypeInviteLinkRequestSequence:
		var payload RequestSequencePayload
		if err := unmarshalPayload(envelope.Payload, &payload); err != nil {
			return Item{}, err
		}
		item.RequestSequence = &payload
	case TypePendingPromotedToFullMember:
		var payload PromotionPayload
		if err := unmarshalPayload(envelope.Payload, &payload); err != nil {
			return Item{}, err
		}
		item.Promotion = &payload
	case TypeOtherUserDeclinedInviteFromLocalUser,
		TypeOtherUserDeclinedInviteFromInviter,
		TypeOtherUserDeclinedInviteFromUnknownUser,
		TypeUnnamedUserDeclinedInviteFromInviter:
		var payload DeclinePayload
		if err := unmarshalPayload(envelope.Payload, &payload); err != nil {
			return Item{}, err
		}
		item.Decline = &payload
	case TypeLocalUserInviteRevoked,
		TypeUnnamedUserInvitesRevokedByLocalUser,
		TypeUnnamedUserInvitesRevokedByOtherUser,
		TypeUnnamedUserInvitesRevokedByUnknownUser:
		var payload RevocationPayload
		if err := unmarshalPayload(envelope.Payload, &payload); err != nil {
			return Item{}, err
		}
		item.Revocation = &payload
	case TypeLocalUserDeclinedInviteFromInviter,
		TypeLocalUserDeclinedInviteFromUnknownUser,
		TypeUnnamedUserDeclinedInviteFromUnknownUser,
		TypeLocalUserInviteRevokedByUnknownUser,
		TypeOtherUserInviteRevokedByLocalUser:
		// No payload.
	default:
		return Item{Type: TypeUnrecognized}, nil
	}
	return item, nil
}

func unmarshalPayload(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
