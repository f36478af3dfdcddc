package gewe

import (
	"encoding/json"
	"strings"
)

const (
	// ContactPrefix starts every personal account identifier.
	ContactPrefix = "wxid_"
	// ChatroomSuffix ends every group chat identifier.
	ChatroomSuffix = "@chatroom"
)

// Wxid identifies a contact or a group chat on the gateway.
// The zero value is not valid; obtain one through ParseWxid.
type Wxid struct {
	s string
}

// ParseWxid validates s and wraps it. No normalization is applied.
func ParseWxid(s string) (Wxid, error) {
	// TODO: enforce a length bound once the gateway documents one.
	if strings.HasPrefix(s, ContactPrefix) || strings.HasSuffix(s, ChatroomSuffix) {
		return Wxid{s: s}, nil
	}
	return Wxid{}, &ValidationError{Input: s}
}

// MustParseWxid is like ParseWxid but panics on invalid input.
func MustParseWxid(s string) Wxid {
	id, err := ParseWxid(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseWxids validates every element of ss, stopping at the first invalid one.
func ParseWxids(ss []string) ([]Wxid, error) {
	ids := make([]Wxid, 0, len(ss))
	for _, s := range ss {
		id, err := ParseWxid(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (w Wxid) String() string { return w.s }

// IsChatroom reports whether w names a group chat.
func (w Wxid) IsChatroom() bool { return strings.HasSuffix(w.s, ChatroomSuffix) }

// IsZero reports whether w was never assigned a valid value.
func (w Wxid) IsZero() bool { return w.s == "" }

// Compare orders identifiers by their raw string.
func (w Wxid) Compare(other Wxid) int { return strings.Compare(w.s, other.s) }

func (w Wxid) MarshalText() ([]byte, error) { return []byte(w.s), nil }

func (w *Wxid) UnmarshalText(text []byte) error {
	id, err := ParseWxid(string(text))
	if err != nil {
		return err
	}
	*w = id
	return nil
}

func (w Wxid) MarshalJSON() ([]byte, error) { return json.Marshal(w.s) }

func (w *Wxid) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return w.UnmarshalText([]byte(s))
}

func joinWxids(ids []Wxid) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.s
	}
	return strings.Join(parts, ",")
}
