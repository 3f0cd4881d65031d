package scoring

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"resume-analyzer/internal/domain/feature"
	"resume-analyzer/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T, seed uint64) *Scorer {
	t.Helper()
	opts := DefaultOptions()
	opts.Trees = 25
	opts.Seed = seed
	return NewScorer(feature.NewExtractor(skill.Default()), opts, log.New(io.Discard, "", 0))
}

func TestPredict_BeforeTrain(t *testing.T) {
	s := newTestScorer(t, 1)

	_, err := s.Predict("python java")
	assert.ErrorIs(t, err, ErrNotTrained)
	assert.False(t, s.Trained())
}

func TestTrain_EmptySamples(t *testing.T) {
	s := newTestScorer(t, 1)

	err := s.Train(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSamples)
	assert.False(t, s.Trained())
}

func TestTrain_OnlyOnce(t *testing.T) {
	s := newTestScorer(t, 1)
	require.NoError(t, s.Train(context.Background(), DefaultSamples()))

	err := s.Train(context.Background(), DefaultSamples())
	assert.ErrorIs(t, err, ErrAlreadyTrained)
}

func TestPredict_WithinSampleRange(t *testing.T) {
	s := newTestScorer(t, 7)
	require.NoError(t, s.Train(context.Background(), DefaultSamples()))

	inputs := []string{
		"",
		"python java sql aws docker kubernetes leadership teamwork 3 projects master degree",
		"Warehouse worker, 2 years.",
	}
	for _, in := range inputs {
		got, err := s.Predict(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 20, "input %q", in)
		assert.LessOrEqual(t, got, 95, "input %q", in)
	}
}

func TestPredict_StableWithinInstance(t *testing.T) {
	s := newTestScorer(t, 0)
	require.NoError(t, s.Train(context.Background(), DefaultSamples()))

	text := "python and java with leadership, 2 projects, bachelor"
	first, err := s.Predict(text)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		got, err := s.Predict(text)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestPredict_SameSeedSameScores(t *testing.T) {
	a := newTestScorer(t, 42)
	b := newTestScorer(t, 42)
	b.opts.Workers = 1
	require.NoError(t, a.Train(context.Background(), DefaultSamples()))
	require.NoError(t, b.Train(context.Background(), DefaultSamples()))

	for _, smp := range DefaultSamples() {
		x, err := a.Predict(smp.Text)
		require.NoError(t, err)
		y, err := b.Predict(smp.Text)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestPredict_SeparatesStrongFromWeak(t *testing.T) {
	s := newTestScorer(t, 3)
	require.NoError(t, s.Train(context.Background(), DefaultSamples()))

	samples := DefaultSamples()
	strong, err := s.Predict(samples[0].Text)
	require.NoError(t, err)
	weak, err := s.Predict(samples[10].Text)
	require.NoError(t, err)
	assert.Greater(t, strong, weak)
}

func TestPredictVector_SchemaMismatch(t *testing.T) {
	s := newTestScorer(t, 1)
	require.NoError(t, s.Train(context.Background(), DefaultSamples()))

	other := feature.NewExtractor(skill.New(skill.Entry{Category: skill.CategoryTechnical, Phrases: []string{"go", "rust"}}))
	_, err := s.PredictVector(other.Extract("go rust"))

	assert.True(t, errors.Is(err, ErrFeatureMismatch))
}

func TestTrain_CanceledContext(t *testing.T) {
	s := newTestScorer(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Train(ctx, DefaultSamples())
	require.Error(t, err)
	assert.False(t, s.Trained())
}

func TestToScore_Truncates(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{72.9, 72},
		{72.1, 72},
		{20, 20},
		{94.999, 94},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toScore(tt.in), "toScore(%v)", tt.in)
	}
}

func TestPredict_TruncatesForestMean(t *testing.T) {
	s := newTestScorer(t, 3)
	require.NoError(t, s.Train(context.Background(), DefaultSamples()))

	text := "python and sql with communication, one project, diploma"
	got, err := s.Predict(text)
	require.NoError(t, err)

	mean := s.model.Load().predict(s.extractor.Extract(feature.Normalize(text)).Float64s())
	assert.Equal(t, int(mean), got)
}
