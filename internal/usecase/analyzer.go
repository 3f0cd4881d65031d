package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"resume-analyzer/internal/domain/analysis"
	"resume-analyzer/internal/domain/feature"
	"resume-analyzer/internal/domain/scoring"
	"resume-analyzer/internal/domain/skill"
	"resume-analyzer/internal/domain/suggestion"
)

type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

type ScoreModel interface {
	PredictVector(v feature.Vector) (int, error)
}

// Analyzer runs the pipeline for one stored PDF: text, features, score,
// detected skills, suggestions.
type Analyzer struct {
	text     TextExtractor
	features *feature.Extractor
	model    ScoreModel
	logger   *log.Logger
}

func NewAnalyzer(text TextExtractor, features *feature.Extractor, model ScoreModel, logger *log.Logger) *Analyzer {
	return &Analyzer{text: text, features: features, model: model, logger: logger}
}

// Analyze never panics; every failure is returned as a tagged Outcome.
func (a *Analyzer) Analyze(ctx context.Context, path string) (out analysis.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			if a != nil && a.logger != nil {
				a.logger.Printf("analysis status=panic path=%s err=%v", path, r)
			}
			out = analysis.Failure(analysis.NewError(analysis.KindInternal, "analyze", fmt.Errorf("%v", r)))
		}
	}()

	if a == nil || a.text == nil || a.features == nil {
		return analysis.Failure(analysis.NewError(analysis.KindInternal, "analyze", ErrInternal))
	}
	if a.model == nil {
		return analysis.Failure(analysis.NewError(analysis.KindNotTrained, "score", scoring.ErrNotTrained))
	}

	raw, err := a.text.Extract(ctx, path)
	if err != nil {
		kind := analysis.KindExtraction
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			kind = analysis.KindInternal
		}
		return analysis.Failure(analysis.NewError(kind, "extract text", err))
	}

	text := feature.Normalize(raw)
	vec := a.features.Extract(text)

	score, err := a.model.PredictVector(vec)
	if err != nil {
		return analysis.Failure(analysis.NewError(scoreErrorKind(err), "score", err))
	}

	technical := a.features.Present(text, skill.CategoryTechnical)
	soft := a.features.Present(text, skill.CategorySoft)
	lex := a.features.Lexicon()

	return analysis.Success(analysis.Result{
		OverallScore:    score,
		TechnicalSkills: technical,
		SoftSkills:      soft,
		Metrics:         analysis.ComputeMetrics(technical, soft, lex.Size(skill.CategoryTechnical), lex.Size(skill.CategorySoft)),
		Suggestions:     suggestion.Generate(suggestion.FromFeatures(vec, technical, soft)),
	})
}

// AnalyzeLegacy returns the Result on success or the
// "Error analyzing resume: ..." string on failure.
func (a *Analyzer) AnalyzeLegacy(ctx context.Context, path string) any {
	return a.Analyze(ctx, path).Legacy()
}

func scoreErrorKind(err error) analysis.Kind {
	switch {
	case errors.Is(err, scoring.ErrNotTrained):
		return analysis.KindNotTrained
	case errors.Is(err, scoring.ErrFeatureMismatch):
		return analysis.KindFeatureMismatch
	default:
		return analysis.KindInternal
	}
}
