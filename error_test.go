package pagetext_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagetext.Errorf(pagetext.ENETWORK, "HTTP %d for %s", 404, "https://example.com")

	assert.Equal(t, pagetext.ENETWORK, pagetext.ErrorCode(err))
	assert.Equal(t, "HTTP 404 for https://example.com", pagetext.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagetext.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching: %w", pagetext.Errorf(pagetext.ERENDER, "navigation failed"))

	assert.Equal(t, pagetext.ERENDER, pagetext.ErrorCode(err))
	assert.Equal(t, "navigation failed", pagetext.ErrorMessage(err))
}

func TestErrorCode_UnknownError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, pagetext.EINTERNAL, pagetext.ErrorCode(err))
	assert.Equal(t, "boom", pagetext.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagetext.ErrorMessage(nil))
}
