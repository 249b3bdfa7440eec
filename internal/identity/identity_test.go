package identity

import (
	"encoding/json"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AddressKind
		ok   bool
	}{
		{"account id", "3f6c1d2a9b", AddressKindAccount, true},
		{"pending id", "pending:9d2e7f", AddressKindPending, true},
		{"phone number", "+15551234567", AddressKindPhone, true},
		{"empty", "", AddressKindNone, false},
		{"whitespace", "   ", AddressKindNone, false},
		{"bare pending prefix", "pending:", AddressKindNone, false},
		{"leading whitespace account", "  3f6c1d2a9b", AddressKindAccount, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, ok := ParseAddress(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseAddress(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if addr.Kind() != tt.want {
				t.Errorf("ParseAddress(%q) kind = %v, want %v", tt.raw, addr.Kind(), tt.want)
			}
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	addresses := []Address{
		AddressOfAccount("3f6c1d2a9b"),
		AddressOfPending("9d2e7f"),
		AddressOfPhone("+15551234567"),
	}
	for _, addr := range addresses {
		parsed, ok := ParseAddress(addr.String())
		if !ok {
			t.Fatalf("ParseAddress(%q) failed", addr.String())
		}
		if parsed != addr {
			t.Errorf("round trip of %q = %#v, want %#v", addr.String(), parsed, addr)
		}
	}
}

func TestAddressAccessors(t *testing.T) {
	addr := AddressOfPending("9d2e7f")
	if _, ok := addr.Account(); ok {
		t.Error("pending address reported an account id")
	}
	if _, ok := addr.Phone(); ok {
		t.Error("pending address reported a phone number")
	}
	pending, ok := addr.Pending()
	if !ok || pending != "9d2e7f" {
		t.Errorf("Pending() = %q, %v, want %q, true", pending, ok, "9d2e7f")
	}
}

func TestIdentityJSON(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		encoded  string
	}{
		{"account", OfAccount("3f6c1d2a9b"), `{"account":"3f6c1d2a9b"}`},
		{"pending", OfPending("9d2e7f"), `{"pending":"9d2e7f"}`},
		{"zero", Identity{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.identity)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.encoded {
				t.Fatalf("marshal = %s, want %s", data, tt.encoded)
			}
			var decoded Identity
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded != tt.identity {
				t.Errorf("round trip = %#v, want %#v", decoded, tt.identity)
			}
		})
	}
}

func TestIdentityUnmarshalRejectsBothKinds(t *testing.T) {
	var decoded Identity
	err := json.Unmarshal([]byte(`{"account":"a","pending":"p"}`), &decoded)
	if err == nil {
		t.Fatal("expected error for identity with both kinds set")
	}
}

func TestIdentityAddress(t *testing.T) {
	id := OfPending("9d2e7f")
	addr := id.Address()
	if addr.Kind() != AddressKindPending {
		t.Fatalf("Address() kind = %v, want pending", addr.Kind())
	}
	if addr.String() != "pending:9d2e7f" {
		t.Errorf("Address().String() = %q, want %q", addr.String(), "pending:9d2e7f")
	}
}
