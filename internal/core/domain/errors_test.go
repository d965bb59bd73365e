package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("approve: %w", WrapError(KindProvisioning, cause, "provision membership"))

	assert.ErrorIs(t, err, ErrProvisioning)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindProvisioning, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(cause))
	assert.Equal(t, "approve: provision membership: connection reset", err.Error())

	v := ValidationError("required questions are not answered", "q1", "q3")
	assert.Equal(t, "required questions are not answered: q1, q3", v.Error())
	assert.Equal(t, "campaign c9 not found", NotFound("campaign", "c9").Error())
}
