package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"fruitstand-backend/internal/domain"
)

func TestErrorKindMatching(t *testing.T) {
	err := domain.Validationf("fruit %q: bad quantities", "truskawka")

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.False(t, domain.IsKind(err, domain.KindNotFound))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "truskawka")
}

func TestErrorKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("generate: %w", domain.NotFoundf("place 1 not found"))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestErrorKindOf_Unknown(t *testing.T) {
	assert.Equal(t, domain.KindStorage, domain.KindOf(errors.New("boom")))
}

func TestStorageErrUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := domain.StorageErr(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage failure")
}
