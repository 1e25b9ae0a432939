package webhook

import (
	"encoding"
	"errors"
	"strings"
)

// ContentType selects how a delivery payload is encoded on the wire.
type ContentType int8

const (
	// ContentTypeJSON encodes the payload as a JSON document.
	ContentTypeJSON ContentType = iota
	// ContentTypeForm encodes the payload as a URL-encoded form.
	ContentTypeForm
)

// ErrInvalidContentType is returned for content types a hook cannot use.
var ErrInvalidContentType = errors.New("invalid content type")

// String returns the media type, suitable for the Content-Type header.
func (c ContentType) String() string {
	switch c {
	case ContentTypeJSON:
		return "application/json"
	case ContentTypeForm:
		return "application/x-www-form-urlencoded"
	default:
		return ""
	}
}

// ParseContentType maps a Content-Type header value onto a ContentType.
// Media type parameters such as charset are ignored.
func ParseContentType(s string) (ContentType, error) {
	s, _, _ = strings.Cut(s, ";")
	switch strings.TrimSpace(s) {
	case "application/json":
		return ContentTypeJSON, nil
	case "application/x-www-form-urlencoded":
		return ContentTypeForm, nil
	default:
		return -1, ErrInvalidContentType
	}
}

var (
	_ encoding.TextMarshaler   = ContentType(0)
	_ encoding.TextUnmarshaler = (*ContentType)(nil)
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ContentType) UnmarshalText(text []byte) error {
	ct, err := ParseContentType(string(text))
	if err != nil {
		return err
	}

	*c = ct
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c ContentType) MarshalText() (text []byte, err error) {
	ct := c.String()
	if ct == "" {
		return nil, ErrInvalidContentType
	}

	return []byte(ct), nil
}
