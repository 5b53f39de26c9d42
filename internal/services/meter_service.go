// Package services implements the use-cases behind every endpoint. Each
// operation is one unit of work: load the whole document, mutate it in
// memory, recompute the derived fields, persist the whole document. The
// file is the only source of truth; no state is kept between calls.
package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/miyukometro/go-backend/internal/domain"
	"github.com/miyukometro/go-backend/internal/sanitize"
)

// DefaultMaxAttachmentBytes caps the attachment payload at 10 MiB, the limit
// the frontend advertises to users.
const DefaultMaxAttachmentBytes = 10 << 20

// DocumentStore is the persistence contract consumed by MeterService.
// Load fails open (defaults instead of errors); Save reports I/O failures.
type DocumentStore interface {
	Load() *domain.Document
	Save(doc *domain.Document) error
}

// CommentInput is a raw, unsanitized comment submission.
type CommentInput struct {
	Text       string
	Author     string
	Anonymous  bool
	Attachment *domain.Attachment
}

// MeterService implements the use-cases of the danger meter. A mutex
// serializes the load-mutate-save cycle so concurrent requests within this
// process cannot overwrite each other's writes.
type MeterService struct {
	// Store is the document persistence backend.
	Store DocumentStore

	// MaxAttachmentBytes overrides the attachment size limit when > 0.
	MaxAttachmentBytes int

	// DisplayLocale selects the human-readable timestamp format for new
	// comments. Zero value means Brazilian Portuguese.
	DisplayLocale language.Tag

	// Now is a test seam; nil means time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// Data returns the whole current document.
func (s *MeterService) Data(ctx context.Context) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Store.Load(), nil
}

// AddComment validates, sanitizes, and prepends a new comment, then applies
// a +1 evaluation delta and persists the document.
//
// Validation:
//   - A submission with neither text nor attachment yields ErrEmptyComment.
//   - An attachment whose payload exceeds the size limit yields
//     ErrAttachmentTooLarge.
//
// The created comment and the new score are returned on success. A
// persistence failure returns the store error; the in-memory mutation is
// discarded with it.
func (s *MeterService) AddComment(ctx context.Context, in CommentInput) (*domain.Comment, int, error) {
	if in.Text == "" && in.Attachment == nil {
		return nil, 0, ErrEmptyComment
	}
	if in.Attachment != nil && len(in.Attachment.Data) > s.maxAttachmentBytes() {
		return nil, 0, ErrAttachmentTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Store.Load()
	now := s.now()

	author := domain.AnonymousAuthor
	if !in.Anonymous {
		if a := sanitize.Text(in.Author); a != "" {
			author = a
		}
	}

	c := domain.Comment{
		ID:             nextCommentID(doc, now.UnixMilli()),
		Text:           sanitize.Text(in.Text),
		Author:         author,
		Anonymous:      in.Anonymous,
		EvaluationType: domain.EvaluationDislike,
		CreatedAtText:  formatDisplayTime(now, s.displayLocaleOrDefault()),
		CreatedAtMs:    now.UnixMilli(),
		Attachment:     in.Attachment,
	}

	doc.Evaluations.Comments = append([]domain.Comment{c}, doc.Evaluations.Comments...)
	doc.RecountEvaluations()
	doc.ApplyEvaluationDelta(+1)

	if err := s.Store.Save(doc); err != nil {
		return nil, 0, err
	}
	return &c, doc.Settings.CurrentScore, nil
}

// RemoveComment deletes the comment with the given id after checking the
// deletion password. The password is checked first, so a wrong password
// yields ErrWrongPassword even when the id does not exist.
//
// Removing an id that does not exist is not an error: the document is
// persisted untouched (apart from its update stamp) and the unchanged score
// is returned. When the id existed, totals are recomputed and a -1
// evaluation delta is applied, clamped at zero.
func (s *MeterService) RemoveComment(ctx context.Context, id int64, password string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Store.Load()
	if password != doc.Settings.DeletionPassword {
		return 0, ErrWrongPassword
	}

	kept := doc.Evaluations.Comments[:0:0]
	existed := false
	for _, c := range doc.Evaluations.Comments {
		if c.ID == id {
			existed = true
			continue
		}
		kept = append(kept, c)
	}
	if kept == nil {
		kept = []domain.Comment{}
	}
	doc.Evaluations.Comments = kept

	if existed {
		doc.RecountEvaluations()
		doc.ApplyEvaluationDelta(-1)
	}

	if err := s.Store.Save(doc); err != nil {
		return 0, err
	}
	return doc.Settings.CurrentScore, nil
}

// SetAlert sets the visual alert flag and persists the document.
func (s *MeterService) SetAlert(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Store.Load()
	doc.Settings.VisualAlertEnabled = enabled
	return s.Store.Save(doc)
}

// nextCommentID generates a millisecond-timestamp id, bumped past any id
// already present in the document so two submissions in the same
// millisecond stay distinct.
func nextCommentID(doc *domain.Document, ms int64) int64 {
	id := ms
	for hasCommentID(doc, id) {
		id++
	}
	return id
}

func hasCommentID(doc *domain.Document, id int64) bool {
	for _, c := range doc.Evaluations.Comments {
		if c.ID == id {
			return true
		}
	}
	return false
}

// displayLocaleOrDefault resolves the locale for comment timestamps.
func (s *MeterService) displayLocaleOrDefault() language.Tag {
	if s.DisplayLocale == language.Und {
		return language.BrazilianPortuguese
	}
	return s.DisplayLocale
}

// formatDisplayTime renders t the way the frontend expects:
// day-first for Portuguese locales, month-first otherwise.
func formatDisplayTime(t time.Time, tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "pt" {
		return t.Format("02/01/2006, 15:04:05")
	}
	return t.Format("01/02/2006, 15:04:05")
}

func (s *MeterService) maxAttachmentBytes() int {
	if s.MaxAttachmentBytes > 0 {
		return s.MaxAttachmentBytes
	}
	return DefaultMaxAttachmentBytes
}

func (s *MeterService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
