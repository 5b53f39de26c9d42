package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/miyukometro/go-backend/internal/domain"
	"github.com/miyukometro/go-backend/internal/store"
)

func newTestService(t *testing.T) *MeterService {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "dados.json"), "")
	return &MeterService{Store: st}
}

func TestAddComment_EmptySubmission(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.AddComment(context.Background(), CommentInput{})
	if !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
}

func TestAddComment_AttachmentOnlyIsValid(t *testing.T) {
	svc := newTestService(t)
	c, score, err := svc.AddComment(context.Background(), CommentInput{
		Attachment: &domain.Attachment{Name: "foto.png", Type: "image/png", Data: "aGk="},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Text != "" || c.Attachment == nil {
		t.Fatalf("comment = %+v", c)
	}
	if score != domain.DefaultPointsPerEvaluation {
		t.Fatalf("score = %d", score)
	}
}

func TestAddComment_AttachmentTooLarge(t *testing.T) {
	svc := newTestService(t)
	svc.MaxAttachmentBytes = 8
	_, _, err := svc.AddComment(context.Background(), CommentInput{
		Attachment: &domain.Attachment{Data: "123456789"},
	})
	if !errors.Is(err, ErrAttachmentTooLarge) {
		t.Fatalf("expected ErrAttachmentTooLarge, got %v", err)
	}
}

func TestAddComment_ScoreMonotonicity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for n := 1; n <= 10; n++ {
		_, score, err := svc.AddComment(ctx, CommentInput{Text: "oi"})
		if err != nil {
			t.Fatalf("add %d: %v", n, err)
		}
		if score != n*domain.DefaultPointsPerEvaluation {
			t.Fatalf("after %d adds score = %d", n, score)
		}
		doc, _ := svc.Data(ctx)
		if doc.Settings.DangerLevel.Classification != domain.Classify(score) {
			t.Fatalf("classification = %q for score %d",
				doc.Settings.DangerLevel.Classification, score)
		}
	}

	// 10 adds → 100 points → CRITICAL band.
	doc, _ := svc.Data(ctx)
	if doc.Settings.DangerLevel.Classification != domain.DangerCritical {
		t.Fatalf("classification = %q, want %q",
			doc.Settings.DangerLevel.Classification, domain.DangerCritical)
	}
}

func TestAddComment_SanitizesTextAndAuthor(t *testing.T) {
	svc := newTestService(t)
	c, _, err := svc.AddComment(context.Background(), CommentInput{
		Text:   `<script>"x"</script>`,
		Author: `<b>Dio</b>`,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Text != "&lt;script&gt;&quot;x&quot;&lt;/script&gt;" {
		t.Fatalf("text = %q", c.Text)
	}
	if c.Author != "&lt;b&gt;Dio&lt;/b&gt;" {
		t.Fatalf("author = %q", c.Author)
	}
}

func TestAddComment_AnonymousAuthor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CommentInput
		want string
		anon bool
	}{
		{"anonymous overrides author", CommentInput{Text: "a", Author: "Erick", Anonymous: true}, domain.AnonymousAuthor, true},
		{"empty author falls back", CommentInput{Text: "b"}, domain.AnonymousAuthor, false},
		{"named author kept", CommentInput{Text: "c", Author: "Erick"}, "Erick", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, err := svc.AddComment(ctx, tc.in)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if c.Author != tc.want || c.Anonymous != tc.anon {
				t.Fatalf("author = %q anon = %v, want %q %v", c.Author, c.Anonymous, tc.want, tc.anon)
			}
			if c.EvaluationType != domain.EvaluationDislike {
				t.Fatalf("evaluation type = %q", c.EvaluationType)
			}
		})
	}
}

func TestAddComment_NewestFirstAndUniqueIDs(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed } // same millisecond every call
	ctx := context.Background()

	first, _, err := svc.AddComment(ctx, CommentInput{Text: "primeiro"})
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := svc.AddComment(ctx, CommentInput{Text: "segundo"})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatalf("ids must be unique, both %d", first.ID)
	}
	if second.ID != first.ID+1 {
		t.Fatalf("same-millisecond id should bump by one: %d then %d", first.ID, second.ID)
	}

	doc, _ := svc.Data(ctx)
	if doc.Evaluations.Comments[0].Text != "segundo" {
		t.Fatalf("newest comment must be first, got %q", doc.Evaluations.Comments[0].Text)
	}
}

func TestAddComment_DisplayTimestampLocale(t *testing.T) {
	svc := newTestService(t)
	svc.Now = func() time.Time { return time.Date(2025, 3, 9, 18, 5, 7, 0, time.UTC) }

	c, _, err := svc.AddComment(context.Background(), CommentInput{Text: "oi"})
	if err != nil {
		t.Fatal(err)
	}
	// Default locale is pt-BR: day first.
	if c.CreatedAtText != "09/03/2025, 18:05:07" {
		t.Fatalf("dataHora = %q", c.CreatedAtText)
	}
	if c.CreatedAtMs != svc.Now().UnixMilli() {
		t.Fatalf("timestamp = %d", c.CreatedAtMs)
	}
}

func TestRemoveComment_WrongPasswordBeforeExistence(t *testing.T) {
	svc := newTestService(t)
	// Unknown id AND wrong password: password error wins.
	_, err := svc.RemoveComment(context.Background(), 123456, "errada")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestRemoveComment_RoundTripScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, score, err := svc.AddComment(ctx, CommentInput{Text: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if score != 10 {
		t.Fatalf("score = %d, want 10", score)
	}

	score, err = svc.RemoveComment(ctx, c.ID, domain.DefaultDeletionPassword)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}

	doc, _ := svc.Data(ctx)
	if len(doc.Evaluations.Comments) != 0 {
		t.Fatalf("comments = %d, want 0", len(doc.Evaluations.Comments))
	}
	if doc.Settings.DangerLevel.Classification != domain.DangerLow {
		t.Fatalf("classification = %q", doc.Settings.DangerLevel.Classification)
	}
}

func TestRemoveComment_UnknownIDIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.AddComment(ctx, CommentInput{Text: "fica"}); err != nil {
		t.Fatal(err)
	}
	score, err := svc.RemoveComment(ctx, 42, domain.DefaultDeletionPassword)
	if err != nil {
		t.Fatalf("remove unknown id: %v", err)
	}
	if score != 10 {
		t.Fatalf("score = %d, want unchanged 10", score)
	}
	doc, _ := svc.Data(ctx)
	if doc.Evaluations.TotalComments != 1 {
		t.Fatalf("totals = %d, want 1", doc.Evaluations.TotalComments)
	}
}

func TestRemoveComment_ScoreNeverNegative(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, _, err := svc.AddComment(ctx, CommentInput{Text: "um"})
	if err != nil {
		t.Fatal(err)
	}

	// Drive the score to zero by hand, then delete the remaining comment:
	// the -1 delta must clamp.
	if _, err := svc.RemoveComment(ctx, -1, domain.DefaultDeletionPassword); err != nil {
		t.Fatal(err)
	}
	score, err := svc.RemoveComment(ctx, first.ID, domain.DefaultDeletionPassword)
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
	score, err = svc.RemoveComment(ctx, first.ID, domain.DefaultDeletionPassword)
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0 after over-deletion", score)
	}
}

func TestTotalsMirrorListLength(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		c, _, err := svc.AddComment(ctx, CommentInput{Text: strings.Repeat("x", i+1)})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, c.ID)
	}
	for _, id := range ids[:2] {
		if _, err := svc.RemoveComment(ctx, id, domain.DefaultDeletionPassword); err != nil {
			t.Fatal(err)
		}
	}

	doc, _ := svc.Data(ctx)
	n := len(doc.Evaluations.Comments)
	if n != 3 {
		t.Fatalf("comments = %d, want 3", n)
	}
	if doc.Evaluations.TotalComments != n || doc.Evaluations.TotalDislikes != n {
		t.Fatalf("totals = (%d,%d), want (%d,%d)",
			doc.Evaluations.TotalComments, doc.Evaluations.TotalDislikes, n, n)
	}
	if doc.Evaluations.TotalLikes != 0 {
		t.Fatalf("likes = %d, want 0", doc.Evaluations.TotalLikes)
	}
}

func TestSetAlert_Persists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetAlert(ctx, false); err != nil {
		t.Fatalf("set alert: %v", err)
	}
	doc, _ := svc.Data(ctx)
	if doc.Settings.VisualAlertEnabled {
		t.Fatal("alert should be disabled")
	}
	if err := svc.SetAlert(ctx, true); err != nil {
		t.Fatal(err)
	}
	doc, _ = svc.Data(ctx)
	if !doc.Settings.VisualAlertEnabled {
		t.Fatal("alert should be enabled")
	}
}

// failingStore wraps a real store but rejects saves.
type failingStore struct {
	inner DocumentStore
	err   error
}

func (f failingStore) Load() *domain.Document      { return f.inner.Load() }
func (f failingStore) Save(*domain.Document) error { return f.err }

func TestPersistenceFailureSurfaces(t *testing.T) {
	boom := errors.New("disco cheio")
	st := store.NewFileStore(filepath.Join(t.TempDir(), "d.json"), "")
	svc := &MeterService{Store: failingStore{inner: st, err: boom}}
	ctx := context.Background()

	if _, _, err := svc.AddComment(ctx, CommentInput{Text: "oi"}); !errors.Is(err, boom) {
		t.Fatalf("add: expected store error, got %v", err)
	}
	if _, err := svc.RemoveComment(ctx, 1, domain.DefaultDeletionPassword); !errors.Is(err, boom) {
		t.Fatalf("remove: expected store error, got %v", err)
	}
	if err := svc.SetAlert(ctx, true); !errors.Is(err, boom) {
		t.Fatalf("alert: expected store error, got %v", err)
	}
}
