// Package store implements persistence for the Miyukometro document: one
// pretty-printed JSON file that is always read and written as a whole.
//
// The read path fails open. A missing, unreadable, or corrupt file yields a
// fully-populated default document, never an error; the condition is logged
// and the next successful save recreates the file. The write path is the
// only place a caller can observe an I/O failure.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miyukometro/go-backend/internal/domain"
)

// FileStore loads and saves the document at a fixed path.
//
// Saves go through a temporary file in the same directory followed by a
// rename, so a concurrent reader never observes a truncated document and a
// crashed write cannot leave a partial one behind.
//
// FileStore itself does no locking. Callers that interleave Load and Save
// must serialize the whole load-mutate-save cycle (MeterService does).
type FileStore struct {
	// Path is the location of the JSON data file.
	Path string

	// BootstrapPassword seeds the deletion password when a default document
	// is materialized. Empty means the built-in default. It has no effect
	// once a data file exists.
	BootstrapPassword string

	// now is a test seam for timestamping saves and defaults.
	now func() time.Time
}

// NewFileStore returns a FileStore for path. bootstrapPassword is only used
// when the backing file is absent and defaults are served.
func NewFileStore(path, bootstrapPassword string) *FileStore {
	return &FileStore{
		Path:              path,
		BootstrapPassword: bootstrapPassword,
		now:               time.Now,
	}
}

// Load reads the whole document from disk. It never fails: any problem
// (absent file, read error, invalid JSON) is logged and a default document
// is returned instead.
func (s *FileStore) Load() *domain.Document {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", s.Path).Msg("data file absent, serving defaults")
		} else {
			log.Error().Err(err).Str("path", s.Path).Msg("data file unreadable, serving defaults")
		}
		return s.defaultDocument()
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Error().Err(err).Str("path", s.Path).Msg("data file corrupt, serving defaults")
		return s.defaultDocument()
	}
	if doc.Evaluations.Comments == nil {
		doc.Evaluations.Comments = []domain.Comment{}
	}
	return &doc
}

// Save stamps the document's update time and writes it to disk as indented
// JSON. The write is temp-file-then-rename; on failure the previous file
// contents remain intact and the error is returned after being logged.
func (s *FileStore) Save(doc *domain.Document) error {
	doc.UpdatedAt = s.now().UTC()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("document marshal failed")
		return err
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		log.Error().Err(err).Str("path", s.Path).Msg("temp file create failed")
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		log.Error().Err(err).Str("path", s.Path).Msg("document write failed")
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		log.Error().Err(err).Str("path", s.Path).Msg("document close failed")
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		log.Error().Err(err).Str("path", s.Path).Msg("document rename failed")
		return err
	}
	return nil
}

func (s *FileStore) defaultDocument() *domain.Document {
	return domain.DefaultDocument(s.BootstrapPassword, s.now().UTC())
}
