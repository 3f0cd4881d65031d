package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-analyzer/internal/database"
	"resume-analyzer/internal/domain/analysis"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const analysisColumns = `id, original_filename, stored_path, fingerprint, overall_score,
	technical_skills, soft_skills, suggestions, metrics, error_kind, error_message, created_at`

type PostgresAnalysisRepository struct {
	db database.DB
}

func NewPostgresAnalysisRepository(db database.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

var _ analysis.Repository = (*PostgresAnalysisRepository)(nil)

func (r *PostgresAnalysisRepository) Save(ctx context.Context, rec analysis.Record) error {
	if r == nil || r.db == nil {
		return database.ErrNilDB
	}
	if rec.ID == uuid.Nil {
		return errors.New("analysis id is required")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var (
		score     *int
		technical = []string{}
		soft      = []string{}
		suggest   = []string{}
		metrics   []byte
		errKind   *string
		errMsg    *string
	)
	if res := rec.Outcome.Result; rec.Outcome.OK() {
		s := res.OverallScore
		score = &s
		technical = nonNil(res.TechnicalSkills)
		soft = nonNil(res.SoftSkills)
		suggest = nonNil(res.Suggestions)
		b, err := json.Marshal(res.Metrics)
		if err != nil {
			return err
		}
		metrics = b
	} else if e := rec.Outcome.Err; e != nil {
		k := string(e.Kind)
		m := "unknown error"
		if e.Err != nil {
			m = e.Err.Error()
		}
		errKind, errMsg = &k, &m
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO analyses (`+analysisColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.OriginalFilename, rec.StoredPath, rec.Fingerprint, score,
		technical, soft, suggest, metrics, errKind, errMsg, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *PostgresAnalysisRepository) List(ctx context.Context, limit, offset int) ([]analysis.Record, error) {
	if r == nil || r.db == nil {
		return nil, database.ErrNilDB
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+analysisColumns+`
		 FROM analyses
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (analysis.Record, error) {
	if r == nil || r.db == nil {
		return analysis.Record{}, database.ErrNilDB
	}
	row := r.db.QueryRow(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analysis.Record{}, analysis.ErrNotFound
		}
		return analysis.Record{}, err
	}
	return rec, nil
}

func scanRecord(row database.Row) (analysis.Record, error) {
	var (
		rec       analysis.Record
		score     *int
		technical []string
		soft      []string
		suggest   []string
		metrics   []byte
		errKind   *string
		errMsg    *string
	)
	if err := row.Scan(
		&rec.ID, &rec.OriginalFilename, &rec.StoredPath, &rec.Fingerprint, &score,
		&technical, &soft, &suggest, &metrics, &errKind, &errMsg, &rec.CreatedAt,
	); err != nil {
		return analysis.Record{}, err
	}

	if errKind != nil {
		msg := ""
		if errMsg != nil {
			msg = *errMsg
		}
		rec.Outcome = analysis.Failure(analysis.NewError(analysis.Kind(*errKind), "", errors.New(msg)))
		return rec, nil
	}

	res := analysis.Result{
		TechnicalSkills: nonNil(technical),
		SoftSkills:      nonNil(soft),
		Suggestions:     nonNil(suggest),
	}
	if score != nil {
		res.OverallScore = *score
	}
	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &res.Metrics); err != nil {
			return analysis.Record{}, fmt.Errorf("decode metrics: %w", err)
		}
	}
	rec.Outcome = analysis.Success(res)
	return rec, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
