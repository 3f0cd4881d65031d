package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"resume-analyzer/internal/database"
	"resume-analyzer/internal/domain/analysis"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeDB struct {
	execQuery string
	execArgs  []any
	row       database.Row
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) Exec(_ context.Context, q string, args ...any) (int64, error) {
	f.execQuery = q
	f.execArgs = args
	return 1, nil
}
func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return f.row }
func (f *fakeDB) SQLDB() *sql.DB                                        { return nil }

func TestAnalysisRepository_SaveSuccess(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresAnalysisRepository(db)
	id := uuid.New()

	err := repo.Save(context.Background(), analysis.Record{
		ID:               id,
		OriginalFilename: "cv.pdf",
		StoredPath:       "uploads/x.pdf",
		Fingerprint:      "abc",
		Outcome: analysis.Success(analysis.Result{
			OverallScore:    72,
			TechnicalSkills: []string{"python"},
			Metrics:         analysis.Metrics{SkillCount: 1},
		}),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.execArgs) != 12 {
		t.Fatalf("expected 12 args, got %d", len(db.execArgs))
	}
	if db.execArgs[0] != id {
		t.Fatalf("expected id arg %s, got %v", id, db.execArgs[0])
	}
	score, ok := db.execArgs[4].(*int)
	if !ok || score == nil || *score != 72 {
		t.Fatalf("expected score 72, got %v", db.execArgs[4])
	}
	if soft, _ := db.execArgs[6].([]string); soft == nil {
		t.Fatalf("expected non-nil soft skills slice")
	}
	if kind, _ := db.execArgs[9].(*string); kind != nil {
		t.Fatalf("expected nil error kind, got %q", *kind)
	}
	if created, _ := db.execArgs[11].(time.Time); created.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestAnalysisRepository_SaveFailure(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresAnalysisRepository(db)

	err := repo.Save(context.Background(), analysis.Record{
		ID:      uuid.New(),
		Outcome: analysis.Failure(analysis.NewError(analysis.KindExtraction, "extract text", errors.New("file is empty"))),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if score, _ := db.execArgs[4].(*int); score != nil {
		t.Fatalf("expected nil score")
	}
	kind, _ := db.execArgs[9].(*string)
	msg, _ := db.execArgs[10].(*string)
	if kind == nil || *kind != "extraction" || msg == nil || *msg != "file is empty" {
		t.Fatalf("unexpected error columns kind=%v msg=%v", kind, msg)
	}
}

func TestAnalysisRepository_SaveRequiresID(t *testing.T) {
	repo := NewPostgresAnalysisRepository(&fakeDB{})
	if err := repo.Save(context.Background(), analysis.Record{}); err == nil {
		t.Fatalf("expected error for nil id")
	}
}

func TestAnalysisRepository_FindByID_NotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	repo := NewPostgresAnalysisRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, analysis.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalysisRepository_FindByID_FailedOutcome(t *testing.T) {
	id := uuid.New()
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*uuid.UUID) = id
		*dest[1].(*string) = "cv.pdf"
		kind := "not_trained"
		msg := "model not trained"
		*dest[9].(**string) = &kind
		*dest[10].(**string) = &msg
		return nil
	}}}
	repo := NewPostgresAnalysisRepository(db)

	rec, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.ID != id || rec.Outcome.OK() {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Outcome.Err.Kind != analysis.KindNotTrained {
		t.Fatalf("expected not_trained, got %s", rec.Outcome.Err.Kind)
	}
	if got := rec.Outcome.Legacy(); got != "Error analyzing resume: model not trained" {
		t.Fatalf("unexpected legacy form %v", got)
	}
}

func TestAnalysisRepository_FindByID_Success(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		score := 81
		*dest[4].(**int) = &score
		*dest[5].(*[]string) = []string{"python", "java"}
		*dest[8].(*[]byte) = []byte(`{"skill_count":2,"tech_skill_ratio":0.5,"soft_skill_ratio":0}`)
		return nil
	}}}
	repo := NewPostgresAnalysisRepository(db)

	rec, err := repo.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !rec.Outcome.OK() {
		t.Fatalf("expected success outcome")
	}
	r := rec.Outcome.Result
	if r.OverallScore != 81 || r.Metrics.SkillCount != 2 || r.Metrics.TechSkillRatio != 0.5 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.SoftSkills == nil || r.Suggestions == nil {
		t.Fatalf("expected non-nil slices")
	}
}
