package object

import "context"

// ObjectStore defines the contract for writing binary objects under a key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte, metadata map[string]string) error
}
