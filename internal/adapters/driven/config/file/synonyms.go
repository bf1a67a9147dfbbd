package file

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
)

// SynonymsFile is the synonym table file name inside the config directory.
const SynonymsFile = "synonyms.toml"

// Ensure SynonymStore implements the interface.
var _ driven.SynonymStore = (*SynonymStore)(nil)

// synonymsDocument is the on-disk layout:
//
//	[synonyms]
//	dress = ["gown", "frock"]
type synonymsDocument struct {
	Synonyms map[string][]string `toml:"synonyms"`
}

// SynonymStore loads the relevance synonym table from a user-editable TOML
// file, falling back to built-in defaults.
//
// The store uses lazy initialisation: the file is written with the defaults
// on first access, not in the constructor.
type SynonymStore struct {
	mu       sync.RWMutex
	dir      string
	defaults map[string][]string
	cache    map[string][]string
	initOnce sync.Once
	initErr  error
}

// NewSynonymStore creates a file-based synonym store.
// If dir is empty, defaults to ~/.shopsearch.
func NewSynonymStore(dir string, defaults map[string][]string) (*SynonymStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &SynonymStore{
		dir:      dir,
		defaults: defaults,
	}, nil
}

// Synonyms returns the table from disk, or the defaults when the file
// cannot be created. A file that exists but does not parse is an error.
func (s *SynonymStore) Synonyms() (map[string][]string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return cloneTable(s.defaults), nil
	}

	s.mu.RLock()
	if s.cache != nil {
		table := cloneTable(s.cache)
		s.mu.RUnlock()
		return table, nil
	}
	s.mu.RUnlock()

	table, err := s.loadFromFile()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cache == nil {
		s.cache = table
	}
	table = cloneTable(s.cache)
	s.mu.Unlock()

	return table, nil
}

// Reload clears the cache, forcing a fresh read from disk.
func (s *SynonymStore) Reload() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

// Path returns the synonym file path.
func (s *SynonymStore) Path() string {
	return filepath.Join(s.dir, SynonymsFile)
}

// initialise writes the defaults if no file exists yet.
func (s *SynonymStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create config directory: %w", err)
		return
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		return
	}

	data, err := toml.Marshal(synonymsDocument{Synonyms: s.defaults})
	if err != nil {
		s.initErr = fmt.Errorf("marshal default synonyms: %w", err)
		return
	}
	header := "# Query synonyms used for relevance scoring.\n" +
		"# A query word on the left also matches products containing any word on the right.\n\n"
	if err := os.WriteFile(s.Path(), append([]byte(header), data...), 0600); err != nil {
		s.initErr = fmt.Errorf("write default synonyms: %w", err)
	}
}

func (s *SynonymStore) loadFromFile() (map[string][]string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}

	var doc synonymsDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path(), err)
	}

	table := make(map[string][]string, len(doc.Synonyms))
	for word, synonyms := range doc.Synonyms {
		key := strings.ToLower(strings.TrimSpace(word))
		if key == "" {
			continue
		}
		for _, synonym := range synonyms {
			if synonym = strings.ToLower(strings.TrimSpace(synonym)); synonym != "" {
				table[key] = append(table[key], synonym)
			}
		}
	}
	return table, nil
}

func cloneTable(table map[string][]string) map[string][]string {
	c := maps.Clone(table)
	for k, v := range c {
		c[k] = slices.Clone(v)
	}
	return c
}
