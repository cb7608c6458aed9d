package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/rankedhq/ranked-api/internal/errors"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "errors_errorstring", Classify(errors.New("boom")))
	assert.Equal(t, "errors_apperror", Classify(apperrors.Forbidden("nope")))
}

func TestClassify_UnwrapsToInnermost(t *testing.T) {
	inner := apperrors.Validation("bad input")
	wrapped := fmt.Errorf("resolve org: %w", inner)
	assert.Equal(t, "errors_apperror", Classify(wrapped))
}
