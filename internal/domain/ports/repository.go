package ports

import (
	"context"
)

// DeckRepository reads and writes deck source files
type DeckRepository interface {
	// Load returns the raw content of the deck at path
	Load(ctx context.Context, path string) ([]byte, error)

	// Save replaces the deck at path with content
	Save(ctx context.Context, path string, content []byte) error
}
