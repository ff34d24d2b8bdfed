package docindex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docindex.Errorf(docindex.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", docindex.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docindex.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docindex.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading guide: %w", docindex.Errorf(docindex.EDUPLICATE, "section %q declared twice", "1"))

	assert.Equal(t, docindex.EDUPLICATE, docindex.ErrorCode(err))
	assert.Equal(t, "section \"1\" declared twice", docindex.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, docindex.EINTERNAL, docindex.ErrorCode(err))
	assert.Equal(t, "Internal error.", docindex.ErrorMessage(err))
}
