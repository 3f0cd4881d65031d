package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("analysis not found")

// Record is a stored analysis of one upload.
type Record struct {
	ID               uuid.UUID
	OriginalFilename string
	StoredPath       string
	Fingerprint      string
	Outcome          Outcome
	CreatedAt        time.Time
}

type Repository interface {
	Save(ctx context.Context, r Record) error
	List(ctx context.Context, limit, offset int) ([]Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (Record, error)
}
