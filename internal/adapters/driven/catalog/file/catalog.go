// Package file provides a JSON file catalog that reloads itself when the
// file changes on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/logger"
	"github.com/custodia-labs/shopsearch/internal/normalisers/html"
)

// DefaultSettle is how long Watch waits after the last event before
// reloading. Editors often write a file in several steps.
const DefaultSettle = 100 * time.Millisecond

// Ensure Catalog implements the interface.
var _ driven.WatchableCatalog = (*Catalog)(nil)

// Catalog serves products from a JSON file. The file holds either an array
// of products or an object with a "products" array.
type Catalog struct {
	path   string
	settle time.Duration

	mu       sync.RWMutex
	products []domain.Product
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSettle overrides the reload settle delay.
func WithSettle(d time.Duration) Option {
	return func(c *Catalog) {
		c.settle = d
	}
}

// New loads the catalog file at path.
func New(path string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		path:   path,
		settle: DefaultSettle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the catalog file path.
func (c *Catalog) Path() string {
	return c.path
}

// Products returns a copy of the last successfully loaded catalog.
func (c *Catalog) Products(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products), nil
}

// Reload re-reads the file. On failure the previous catalog stays in place.
func (c *Catalog) Reload() error {
	products, err := Load(c.path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	logger.Debug("Loaded %d products from %s", len(products), c.path)
	return nil
}

// Watch reloads the catalog whenever the file changes and then calls
// onChange. The parent directory is watched so that editors which replace
// the file by rename are picked up. Watch blocks until ctx is done.
func (c *Catalog) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(c.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("Watching %s for catalog changes", c.path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !c.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(c.settle)
			} else {
				timer.Reset(c.settle)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher: %v", err)
		case <-fire:
			fire = nil
			if err := c.Reload(); err != nil {
				logger.Warn("catalog reload failed, keeping previous catalog: %v", err)
				continue
			}
			if onChange != nil {
				onChange()
			}
		}
	}
}

func (c *Catalog) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(c.path) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}

type catalogDocument struct {
	Products []domain.Product `json:"products"`
}

// Load reads and validates a catalog file. Every product needs a unique,
// non-empty ID. Markup in text fields is reduced to plain text.
func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read catalog %s: %w", path, domain.ErrCatalogUnavailable)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	products, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog %s: product %d has no id: %w", path, i, domain.ErrInvalidInput)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate id %q: %w", path, p.ID, domain.ErrInvalidInput)
		}
		seen[p.ID] = true
	}
	html.New().NormaliseAll(products)
	return products, nil
}

func decode(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err == nil {
		return products, nil
	}
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Products, nil
}
