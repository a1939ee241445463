package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to save analysis")

	assert.True(t, errors.Is(err, cause), "wrapped cause should survive errors.Is")
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "failed to save analysis", MessageOf(err))
}

func TestCodeOfUnclassified(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, "", MessageOf(errors.New("boom")))
}

func TestCodeOfThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(CodeNotFound, "analysis not found"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, "analysis not found", MessageOf(err))
}
