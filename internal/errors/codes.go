// Package errors provides structured error handling with machine-readable
// codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Record errors
	CodeRecordEmptyID             Code = "RECORD_EMPTY_ID"
	CodeRecordEmptyConversationID Code = "RECORD_EMPTY_CONVERSATION_ID"
	CodeRecordInvalidGeneration   Code = "RECORD_INVALID_GENERATION"

	// Item errors
	CodeItemEncodeFailed Code = "ITEM_ENCODE_FAILED"
	CodeItemMissingRaw   Code = "ITEM_MISSING_RAW_ENCODING"
	CodeItemUnknownType  Code = "ITEM_UNKNOWN_TYPE"
	CodeItemDecodeFailed Code = "ITEM_DECODE_FAILED"

	// Storage errors
	CodeStorageNotConfigured Code = "STORAGE_NOT_CONFIGURED"
	CodeNotFound             Code = "NOT_FOUND"
)
