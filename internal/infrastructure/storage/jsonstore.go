// Package storage implements the JSON document store backing the catalog,
// the client ledger and the company profile. Writes are all-or-nothing: the
// document is marshalled to a temp file, the previous file is kept as a
// one-generation .bak copy, and the temp file atomically replaces the
// original.
package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store reads and writes whole JSON documents on disk.
type Store struct {
	logger *zap.Logger
}

// NewStore creates a document store that reports failures to the given logger.
func NewStore(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the document at path into a value of type T. A missing file
// returns def unmodified; an unreadable or corrupt file is logged and also
// degrades to def. Load never fails: callers rendering an unexpectedly empty
// document should warn the operator that it may mean a failed load.
func Load[T any](s *Store, path string, def T) T {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return def
	}
	if err != nil {
		s.logger.Error("failed to read document", zap.String("path", path), zap.Error(err))
		return def
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Error("failed to parse document", zap.String("path", path), zap.Error(err))
		return def
	}
	return doc
}

// Save writes doc to path atomically. The previous content, if any, survives
// as path+".bak" (overwriting any older backup). On failure the temp file is
// removed and the original file is left untouched.
func (s *Store) Save(path string, doc any) error {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			s.logger.Error("failed to create data directory", zap.String("path", parent), zap.Error(err))
			return err
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		s.logger.Error("failed to marshal document", zap.String("path", path), zap.Error(err))
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("failed to write temp document", zap.String("path", tmpPath), zap.Error(err))
		_ = os.Remove(tmpPath)
		return err
	}

	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", prev, 0o644); err != nil {
			s.logger.Error("failed to write backup", zap.String("path", path+".bak"), zap.Error(err))
			_ = os.Remove(tmpPath)
			return err
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		s.logger.Error("failed to replace document", zap.String("path", path), zap.Error(err))
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
