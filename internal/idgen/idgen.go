// Package idgen generates short correlation IDs for outbound API requests so
// that related debug log lines can be grouped.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// RequestPrefix is prepended to every request ID.
const RequestPrefix = "req-"

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 8
)

// NewRequestID returns a fresh request correlation ID such as "req-3kx09zq1".
func NewRequestID() (string, error) {
	return New(RequestPrefix, size)
}

// New returns prefix followed by n random lowercase alphanumerics.
func New(prefix string, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("idgen: invalid length %d", n)
	}
	id, err := nanoid.Generate(alphabet, n)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
