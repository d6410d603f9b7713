package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means no upstream API key is configured.
	ErrMissingCredential = errors.New("polygon api key not configured")
	// ErrNotFound means the upstream answered but has no bars for the symbol.
	ErrNotFound = errors.New("stock not found")
)

// UpstreamError is a non-success HTTP status from the market-data provider.
type UpstreamError struct {
	Call   string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Polygon API error: %d - %s", e.Status, e.Body)
}

// IsUpstream reports whether err carries an *UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
