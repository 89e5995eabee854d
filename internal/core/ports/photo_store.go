package ports

import (
	"context"
	"io"
)

// PhotoStore persists an uploaded binary and returns a stable reference path.
// The core only ever stores the returned reference string.
type PhotoStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
