package scoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"resume-analyzer/internal/domain/feature"
	"resume-analyzer/internal/pkg/workerpool"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotTrained      = errors.New("model not trained")
	ErrAlreadyTrained  = errors.New("model already trained")
	ErrNoSamples       = errors.New("no training samples")
	ErrFeatureMismatch = errors.New("feature schema mismatch")
)

type Options struct {
	Trees           int
	Seed            uint64
	Workers         int
	MaxDepth        int
	MinSamplesSplit int
}

func DefaultOptions() Options {
	return Options{
		Trees:           100,
		Workers:         4,
		MinSamplesSplit: 2,
	}
}

func (o Options) normalized() Options {
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.MinSamplesSplit < 2 {
		o.MinSamplesSplit = 2
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	return o
}

type forest struct {
	fingerprint string
	width       int
	trees       []*node
}

func (f *forest) predict(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// Scorer is a random forest regressor over feature vectors. It is trained
// once and is read-only afterwards, so Predict is safe for concurrent use.
type Scorer struct {
	extractor *feature.Extractor
	opts      Options
	logger    *log.Logger

	mu    sync.Mutex
	model atomic.Pointer[forest]
}

func NewScorer(extractor *feature.Extractor, opts Options, logger *log.Logger) *Scorer {
	if logger == nil {
		logger = log.Default()
	}
	return &Scorer{
		extractor: extractor,
		opts:      opts.normalized(),
		logger:    logger,
	}
}

func (s *Scorer) Trained() bool {
	return s != nil && s.model.Load() != nil
}

// Train fits the forest on samples. It may be called only once per Scorer.
func (s *Scorer) Train(ctx context.Context, samples []Sample) error {
	if s == nil || s.extractor == nil {
		return ErrNotTrained
	}
	if len(samples) == 0 {
		return ErrNoSamples
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model.Load() != nil {
		return ErrAlreadyTrained
	}

	start := time.Now()
	schema := s.extractor.Schema()
	width := schema.Len()

	x := mat.NewDense(len(samples), width, nil)
	y := make([]float64, len(samples))
	for i, smp := range samples {
		v := s.extractor.Extract(feature.Normalize(smp.Text))
		x.SetRow(i, v.Float64s())
		y[i] = smp.Score
	}

	seed := s.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	params := treeParams{
		maxDepth:        s.opts.MaxDepth,
		minSamplesSplit: s.opts.MinSamplesSplit,
		maxFeatures:     maxFeatures(width),
	}

	trees := make([]*node, s.opts.Trees)
	tasks := make([]workerpool.Task, len(trees))
	for i := range trees {
		tasks[i] = func(ctx context.Context) error {
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			trees[i] = growTree(x, y, params, rng)
			return nil
		}
	}
	if err := workerpool.RunAll(ctx, s.opts.Workers, tasks); err != nil {
		return fmt.Errorf("train forest: %w", err)
	}

	s.model.Store(&forest{
		fingerprint: schema.Fingerprint(),
		width:       width,
		trees:       trees,
	})
	s.logger.Printf("scorer=forest status=trained samples=%d trees=%d features=%d duration=%s", len(samples), len(trees), width, time.Since(start))
	return nil
}

// Predict scores raw or normalized text.
func (s *Scorer) Predict(text string) (int, error) {
	if s == nil || s.extractor == nil {
		return 0, ErrNotTrained
	}
	return s.PredictVector(s.extractor.Extract(feature.Normalize(text)))
}

// PredictVector scores a vector built by an extractor with the same schema
// the forest was trained on.
func (s *Scorer) PredictVector(v feature.Vector) (int, error) {
	if s == nil {
		return 0, ErrNotTrained
	}
	m := s.model.Load()
	if m == nil {
		return 0, ErrNotTrained
	}
	if v.Schema().Fingerprint() != m.fingerprint || v.Len() != m.width {
		return 0, fmt.Errorf("%w: trained=%s got=%s", ErrFeatureMismatch, m.fingerprint, v.Schema().Fingerprint())
	}
	return toScore(m.predict(v.Float64s())), nil
}

// toScore drops the fractional part of a forest prediction.
func toScore(p float64) int {
	return int(math.Trunc(p))
}

func maxFeatures(width int) int {
	n := int(math.Sqrt(float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}
