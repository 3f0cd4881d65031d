package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-analyzer/internal/domain/analysis"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Archiver interface {
	Archive(ctx context.Context, key string, path string) error
}

type Notifier interface {
	AnalysisCompleted(id, filename string, score *int, errorKind string)
}

type Upload struct {
	Filename string
	Content  io.Reader
}

type Submission struct {
	ID               uuid.UUID
	OriginalFilename string
	Fingerprint      string
	Cached           bool
	Outcome          analysis.Outcome
	CreatedAt        time.Time
}

type ResumeOptions struct {
	UploadDir string
	MaxBytes  int64
	CacheTTL  time.Duration
	// SchemaFingerprint scopes cache keys to one feature layout.
	SchemaFingerprint string
}

type ResumeUsecase interface {
	Submit(ctx context.Context, up Upload) (Submission, error)
	List(ctx context.Context, limit, offset int) ([]analysis.Record, error)
	Get(ctx context.Context, id uuid.UUID) (analysis.Record, error)
}

type Resume struct {
	analyzer *Analyzer
	repo     analysis.Repository
	cache    ResultCache
	archiver Archiver
	notifier Notifier
	opts     ResumeOptions
	logger   *log.Logger
}

func NewResumeUsecase(analyzer *Analyzer, repo analysis.Repository, cache ResultCache, archiver Archiver, notifier Notifier, opts ResumeOptions, logger *log.Logger) *Resume {
	if strings.TrimSpace(opts.UploadDir) == "" {
		opts.UploadDir = "uploads"
	}
	return &Resume{
		analyzer: analyzer,
		repo:     repo,
		cache:    cache,
		archiver: archiver,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
	}
}

// AllowedFile reports whether name has a .pdf extension, ignoring case.
func AllowedFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// Submit stores the upload under a generated name, analyzes it and records
// the outcome. Analysis failures are reported in the Submission, not as an
// error; the error is reserved for rejected uploads and storage failures.
func (u *Resume) Submit(ctx context.Context, up Upload) (Submission, error) {
	if up.Content == nil {
		return Submission{}, ErrNoFilePart
	}
	name := filepath.Base(strings.TrimSpace(up.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return Submission{}, ErrNoSelectedFile
	}
	if !AllowedFile(name) {
		return Submission{}, ErrUnsupportedFile
	}

	id := uuid.New()
	path, fingerprint, err := u.store(id, up.Content)
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{
		ID:               id,
		OriginalFilename: name,
		Fingerprint:      fingerprint,
		CreatedAt:        time.Now().UTC(),
	}

	key := AnalysisCacheKey(u.opts.SchemaFingerprint, fingerprint)
	if u.cache != nil {
		var cached analysis.Result
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			sub.Cached = true
			sub.Outcome = analysis.Success(cached)
			if u.logger != nil {
				u.logger.Printf("[Analysis] Cache HIT: %s", key)
			}
		}
	}
	if !sub.Cached {
		sub.Outcome = u.analyzer.Analyze(ctx, path)
	}

	u.archive(ctx, id, path)
	u.save(ctx, sub, path)

	if sub.Outcome.OK() && !sub.Cached && u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, *sub.Outcome.Result, u.opts.CacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Analysis] cache set error key=%s err=%v", key, err)
		}
	}
	u.notify(sub)

	if u.logger != nil {
		if sub.Outcome.OK() {
			u.logger.Printf("analysis status=ok id=%s file=%q score=%d cached=%t", id, name, sub.Outcome.Result.OverallScore, sub.Cached)
		} else {
			u.logger.Printf("analysis status=error id=%s file=%q kind=%s err=%v", id, name, sub.Outcome.Err.Kind, sub.Outcome.Err)
		}
	}
	return sub, nil
}

func (u *Resume) List(ctx context.Context, limit, offset int) ([]analysis.Record, error) {
	if u == nil || u.repo == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 100 || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Resume) Get(ctx context.Context, id uuid.UUID) (analysis.Record, error) {
	if u == nil || u.repo == nil {
		return analysis.Record{}, ErrHistoryUnavailable
	}
	if id == uuid.Nil {
		return analysis.Record{}, ErrInvalidInput
	}
	rec, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return analysis.Record{}, ErrNotFound
		}
		return analysis.Record{}, ErrInternal
	}
	return rec, nil
}

// store copies the upload to <UploadDir>/<id>.pdf and returns its path and
// BLAKE2b-256 digest.
func (u *Resume) store(id uuid.UUID, content io.Reader) (string, string, error) {
	if err := os.MkdirAll(u.opts.UploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("%w: create upload dir: %v", ErrInternal, err)
	}
	path := filepath.Join(u.opts.UploadDir, id.String()+".pdf")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", "", fmt.Errorf("%w: create upload: %v", ErrInternal, err)
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		f.Close()
		return "", "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	src := content
	if u.opts.MaxBytes > 0 {
		src = io.LimitReader(content, u.opts.MaxBytes+1)
	}
	n, err := io.Copy(io.MultiWriter(f, h), src)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("%w: write upload: %v", ErrInternal, err)
	}
	if u.opts.MaxBytes > 0 && n > u.opts.MaxBytes {
		os.Remove(path)
		return "", "", ErrFileTooLarge
	}
	return path, hex.EncodeToString(h.Sum(nil)), nil
}

func (u *Resume) archive(ctx context.Context, id uuid.UUID, path string) {
	if u.archiver == nil {
		return
	}
	if err := u.archiver.Archive(ctx, ArchiveKey(id.String()), path); err != nil && u.logger != nil {
		u.logger.Printf("[Archive] upload error id=%s err=%v", id, err)
	}
}

func (u *Resume) save(ctx context.Context, sub Submission, path string) {
	if u.repo == nil {
		return
	}
	rec := analysis.Record{
		ID:               sub.ID,
		OriginalFilename: sub.OriginalFilename,
		StoredPath:       path,
		Fingerprint:      sub.Fingerprint,
		Outcome:          sub.Outcome,
		CreatedAt:        sub.CreatedAt,
	}
	if err := u.repo.Save(ctx, rec); err != nil && u.logger != nil {
		u.logger.Printf("[Analysis] save error id=%s err=%v", sub.ID, err)
	}
}

func (u *Resume) notify(sub Submission) {
	if u.notifier == nil {
		return
	}
	var score *int
	kind := ""
	if sub.Outcome.OK() {
		s := sub.Outcome.Result.OverallScore
		score = &s
	} else if sub.Outcome.Err != nil {
		kind = string(sub.Outcome.Err.Kind)
	}
	u.notifier.AnalysisCompleted(sub.ID.String(), sub.OriginalFilename, score, kind)
}
