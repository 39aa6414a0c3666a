package result

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the URI scheme of every handle.
const Scheme = "kdd"

// Kind names the type of a published result.
type Kind string

const (
	// KindCluster marks a k-means clustering report.
	KindCluster Kind = "cluster"
	// KindDifference marks a pin difference report.
	KindDifference Kind = "difference"
)

// ErrInvalidHandle is returned by ParseHandle for malformed input.
var ErrInvalidHandle = errors.New("result: invalid handle")

// Handle addresses one published result. The zero Handle addresses nothing.
type Handle struct {
	Kind Kind
	Name string
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.Kind == "" && h.Name == "" }

// String renders h as kdd://<kind>/<name>, or "" for the zero handle.
func (h Handle) String() string {
	if h.IsZero() {
		return ""
	}
	return Scheme + "://" + string(h.Kind) + "/" + url.PathEscape(h.Name)
}

// key is the blob key under which the result is stored.
func (h Handle) key() string {
	return string(h.Kind) + "/" + h.Name
}

// ParseHandle parses the output of Handle.String.
func ParseHandle(s string) (Handle, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	if u.Scheme != Scheme {
		return Handle{}, fmt.Errorf("%w: scheme %q", ErrInvalidHandle, u.Scheme)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || name == "" || strings.Contains(name, "/") {
		return Handle{}, fmt.Errorf("%w: %q", ErrInvalidHandle, s)
	}
	return Handle{Kind: Kind(u.Host), Name: name}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (h Handle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Handle) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*h = Handle{}
		return nil
	}
	p, err := ParseHandle(string(b))
	if err != nil {
		return err
	}
	*h = p
	return nil
}
