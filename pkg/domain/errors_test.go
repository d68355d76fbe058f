package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := domain.DuplicateDecision("a")
	assert.ErrorIs(t, err, domain.ErrDuplicateDecision)
	assert.NotErrorIs(t, err, domain.ErrUnknownDecision)

	wrapped := fmt.Errorf("mark failed: %w", err)
	assert.ErrorIs(t, wrapped, domain.ErrDuplicateDecision)
	assert.Equal(t, domain.KindDuplicate, domain.KindOf(wrapped))

	var e *domain.Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "a", e.Key)
	assert.Contains(t, e.Error(), `"a"`)
}

func TestKindOf_Foreign(t *testing.T) {
	assert.Equal(t, domain.Kind(""), domain.KindOf(errors.New("boom")))
	assert.Equal(t, domain.Kind(""), domain.KindOf(nil))
}
