package store

import (
	"errors"
	"os"
	"sync"
)

// ConfigStore owns config.json: loading it at startup (seeding a default
// document if absent), and replacing it wholesale on every POST
// /api/config. All access is serialised by mu so a concurrent GET always
// observes a complete Configuration.
type ConfigStore struct {
	path string

	mu  sync.RWMutex
	cfg Configuration
}

// LoadConfigStore loads config.json from path, normalising it. If the file
// does not exist, it seeds and persists DefaultConfiguration.
func LoadConfigStore(path string) (*ConfigStore, error) {
	s := &ConfigStore{path: path}

	var raw RawConfiguration
	err := readJSON(path, &raw)
	switch {
	case err == nil:
		s.cfg = raw.Normalize()
	case errors.Is(err, os.ErrNotExist):
		s.cfg = DefaultConfiguration()
		if werr := writeJSONAtomic(path, s.cfg); werr != nil {
			return nil, werr
		}
	default:
		return nil, err
	}

	return s, nil
}

// Get returns the current normalised configuration.
func (s *ConfigStore) Get() Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace normalises raw and persists it atomically before installing it in
// memory. The file is rewritten on every call, even when the document is
// unchanged; identical input yields a byte-identical file. Replace
// never partially applies a document: a failed write leaves the prior
// configuration active.
func (s *ConfigStore) Replace(raw RawConfiguration) (Configuration, error) {
	normalized := raw.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSONAtomic(s.path, normalized); err != nil {
		return Configuration{}, err
	}
	s.cfg = normalized
	return s.cfg, nil
}
