// Package cache stores rendered drawings.
//
// Four backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// and [MongoCache] for the HTTP service, and [NullCache] when caching is
// off. Keys come from a [Keyer] so that callers never build key strings by
// hand.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cache entries.
const (
	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLDrawing is how long a drawing issued by the HTTP API stays
	// downloadable.
	TTLDrawing = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of one set of inputs.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
	// DrawingKey identifies one artifact of a drawing issued by the API.
	DrawingKey(id, format string) string
}

// ArtifactKeyOpts are the render settings that distinguish artifacts of the
// same inputs.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// DrawingKey returns "drawing:<id>:<format>".
func (DefaultKeyer) DrawingKey(id, format string) string {
	return "drawing:" + id + ":" + format
}
