package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// DefaultCacheSize is the number of summaries kept in memory per run.
const DefaultCacheSize = 10_000

// cachedProvider memoizes successful summaries for the lifetime of the process.
// Failures are not cached.
type cachedProvider struct {
	inner Provider
	cache otter.Cache[string, string]
}

// NewCachedProvider wraps a provider with an in-memory summary cache keyed by
// content kind, detail level and text.
func NewCachedProvider(inner Provider, size int) (Provider, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := otter.MustBuilder[string, string](size).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create summary cache: %w", err)
	}
	return &cachedProvider{inner: inner, cache: cache}, nil
}

func (p *cachedProvider) Initialize(ctx context.Context) error {
	return p.inner.Initialize(ctx)
}

// Summarize implements Provider.
func (p *cachedProvider) Summarize(ctx context.Context, text string, level model.DetailLevel, kind model.ContentKind) (string, error) {
	key := cacheKey(text, level, kind)
	if summary, ok := p.cache.Get(key); ok {
		return summary, nil
	}

	summary, err := p.inner.Summarize(ctx, text, level, kind)
	if err != nil {
		return "", err
	}
	p.cache.Set(key, summary)
	return summary, nil
}

func (p *cachedProvider) Name() string {
	return p.inner.Name()
}

func (p *cachedProvider) Close() error {
	p.cache.Close()
	return p.inner.Close()
}

func cacheKey(text string, level model.DetailLevel, kind model.ContentKind) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(level))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
