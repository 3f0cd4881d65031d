package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics([]string{"python", "java"}, []string{"leadership"}, 17, 7)

	assert.Equal(t, 3, m.SkillCount)
	assert.InDelta(t, 2.0/17.0, m.TechSkillRatio, 1e-12)
	assert.InDelta(t, 1.0/7.0, m.SoftSkillRatio, 1e-12)

	empty := ComputeMetrics(nil, nil, 0, 0)
	assert.Equal(t, Metrics{}, empty)
}

func TestOutcome_Legacy(t *testing.T) {
	ok := Success(Result{OverallScore: 70})
	assert.True(t, ok.OK())
	assert.Equal(t, Result{OverallScore: 70}, ok.Legacy())

	failed := Failure(NewError(KindExtraction, "extract text", errors.New("file is empty")))
	assert.False(t, failed.OK())
	assert.Equal(t, "Error analyzing resume: file is empty", failed.Legacy())

	assert.Equal(t, "Error analyzing resume: unknown error", Failure(nil).Legacy())
}

func TestError_KindAndRetryable(t *testing.T) {
	base := errors.New("no such file")
	err := NewError(KindExtraction, "extract text", base)
	wrapped := fmt.Errorf("analyze: %w", err)

	assert.Equal(t, "extract text: no such file", err.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, KindExtraction, KindOf(wrapped))
	assert.True(t, err.Retryable())

	assert.False(t, NewError(KindNotTrained, "", nil).Retryable())
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
