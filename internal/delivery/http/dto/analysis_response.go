package dto

import (
	"time"

	"resume-analyzer/internal/domain/analysis"

	"github.com/google/uuid"
)

type AnalysisErrorResponse struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type AnalysisResponse struct {
	ID          uuid.UUID              `json:"id"`
	Filename    string                 `json:"filename"`
	Fingerprint string                 `json:"fingerprint"`
	Cached      bool                   `json:"cached"`
	CreatedAt   time.Time              `json:"created_at"`
	Result      *analysis.Result       `json:"result"`
	Error       *AnalysisErrorResponse `json:"error,omitempty"`
}

type AnalysisListResponse struct {
	Items  []AnalysisResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

func NewAnalysisResponse(id uuid.UUID, filename, fingerprint string, cached bool, createdAt time.Time, out analysis.Outcome) AnalysisResponse {
	res := AnalysisResponse{
		ID:          id,
		Filename:    filename,
		Fingerprint: fingerprint,
		Cached:      cached,
		CreatedAt:   createdAt,
		Result:      out.Result,
	}
	if e := out.Err; e != nil {
		msg := "unknown error"
		if e.Err != nil {
			msg = e.Err.Error()
		}
		res.Error = &AnalysisErrorResponse{Kind: string(e.Kind), Message: msg, Retryable: e.Retryable()}
	}
	return res
}

func FromRecord(r analysis.Record) AnalysisResponse {
	return NewAnalysisResponse(r.ID, r.OriginalFilename, r.Fingerprint, false, r.CreatedAt, r.Outcome)
}
