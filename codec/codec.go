package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

// ContentTypeJSON is the media type sent and accepted by JSON.
const ContentTypeJSON = "application/json"

// ErrTrailingData reports input that continues after the first JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// Codec marshals and unmarshals payloads of a single media type.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Error reports a failed encode or decode.
type Error struct {
	Op  string // "marshal" or "unmarshal"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// JSON is a Codec backed by goccy/go-json.
type JSON struct {
	// Lenient accepts comments and trailing commas in decoded input.
	Lenient bool
	// Strict rejects unknown object keys instead of ignoring them.
	Strict bool
}

// DefaultJSON ignores unknown keys and parses leniently.
func DefaultJSON() JSON {
	return JSON{Lenient: true}
}

func (JSON) ContentType() string { return ContentTypeJSON }

// Marshal encodes v. A nil v encodes to no bytes.
func (c JSON) Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &Error{Op: "marshal", Err: err}
	}
	return data, nil
}

// Unmarshal decodes data into v. Empty or whitespace-only input leaves v
// untouched; anything after the first value is an error.
func (c JSON) Unmarshal(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if c.Lenient {
		std, err := hujson.Standardize(data)
		if err != nil {
			return &Error{Op: "unmarshal", Err: err}
		}
		data = std
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return &Error{Op: "unmarshal", Err: err}
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return &Error{Op: "unmarshal", Err: ErrTrailingData}
	}
	return nil
}
