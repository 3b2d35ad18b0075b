package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Source supplies the catalog once at startup.
type Source interface {
	Load(ctx context.Context) ([]Item, error)
}

// StaticSource serves a fixed list of items.
type StaticSource struct {
	items []Item
}

func NewStaticSource(items []Item) *StaticSource {
	return &StaticSource{items: items}
}

func (s *StaticSource) Load(ctx context.Context) ([]Item, error) {
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = item.clone()
	}
	return out, nil
}

// ObjectFetcher reads a whole object from a bucket.
type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// ObjectSource loads a MenuDocument stored as JSON in object storage.
type ObjectSource struct {
	fetcher ObjectFetcher
	key     string
}

func NewObjectSource(fetcher ObjectFetcher, key string) *ObjectSource {
	return &ObjectSource{fetcher: fetcher, key: key}
}

func (s *ObjectSource) Load(ctx context.Context) ([]Item, error) {
	raw, err := s.fetcher.Fetch(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("fetch menu %s: %w", s.key, err)
	}

	var doc MenuDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode menu %s: %w", s.key, err)
	}

	return doc.Items, nil
}

// FallbackSource uses Fallback while nothing has been published to Primary.
type FallbackSource struct {
	Primary  Source
	Fallback Source
}

func (s FallbackSource) Load(ctx context.Context) ([]Item, error) {
	items, err := s.Primary.Load(ctx)
	if errors.Is(err, ErrNoMenuDocument) {
		log.Printf("[MENU] no published menu, using built-in items")
		return s.Fallback.Load(ctx)
	}
	return items, err
}
