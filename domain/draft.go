package domain

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// EncodeDraft serializes a draft into the opaque token the client carries
// in the modal's private metadata. The empty draft encodes to "[]" so a
// round trip through EncodeDraft and DecodeDraft is exact for any input.
func EncodeDraft(d Draft) (string, error) {
	if d == nil {
		d = Draft{}
	}
	data, err := sonic.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	return string(data), nil
}

// DecodeDraft is the inverse of EncodeDraft. An empty token means the
// modal has no options yet and yields an empty draft. A malformed token
// is a caller error and is reported as such, never as a partial draft.
func DecodeDraft(token string) (Draft, error) {
	if token == "" {
		return Draft{}, nil
	}
	var d Draft
	if err := sonic.UnmarshalString(token, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if d == nil {
		d = Draft{}
	}
	return d, nil
}

// AppendOption returns a new draft with value as the last entry. A blank
// value leaves the draft unchanged: the user pressed enter on an empty
// field, which is acknowledged but not an edit. Duplicates are allowed.
func AppendOption(d Draft, value string) Draft {
	if strings.TrimSpace(value) == "" {
		return d
	}
	out := make(Draft, len(d), len(d)+1)
	copy(out, d)
	return append(out, value)
}

// RemoveOption returns a new draft with every entry equal to value
// removed. Removal is by value because the round-tripped token carries
// option text, not stable positions. An absent value is a no-op.
func RemoveOption(d Draft, value string) Draft {
	out := make(Draft, 0, len(d))
	for _, o := range d {
		if o != value {
			out = append(out, o)
		}
	}
	return out
}
