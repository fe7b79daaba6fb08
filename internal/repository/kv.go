package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrKeyNotFound is returned by KV.Get for a key that was never set.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptDocument means a stored value is not valid JSON for its key.
	ErrCorruptDocument = errors.New("corrupt document")
)

// KV stores whole documents under string keys. Implementations must be safe
// for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type prefixedKV struct {
	kv     KV
	prefix string
}

// WithPrefix namespaces every key of kv. An empty prefix returns kv as is.
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return &prefixedKV{kv: kv, prefix: prefix}
}

func (p *prefixedKV) Get(ctx context.Context, key string) ([]byte, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixedKV) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

// readDocument decodes the JSON document at key. A missing or empty value
// yields fallback(); so does a corrupt one, which is logged.
func readDocument[T any](ctx context.Context, kv KV, log zerolog.Logger, key string, fallback func() T) (T, error) {
	v, err := loadDocument(ctx, kv, key, fallback)
	if errors.Is(err, ErrCorruptDocument) {
		log.Error().Err(err).Str("key", key).Msg("Corrupt document, using default")
		return fallback(), nil
	}
	return v, err
}

// loadDocument is readDocument for read-modify-write paths: a corrupt value
// is returned as ErrCorruptDocument so it is never overwritten.
func loadDocument[T any](ctx context.Context, kv KV, key string, fallback func() T) (T, error) {
	var zero T
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) || (err == nil && len(raw) == 0) {
		return fallback(), nil
	}
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, key, err)
	}
	return v, nil
}

func writeDocument[T any](ctx context.Context, kv KV, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
