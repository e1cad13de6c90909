package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Latitude *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Count    int      `json:"num_events,omitempty" validate:"omitempty,min=1,max=100"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	lat := 120.0

	err := v.Validate(&sample{Latitude: &lat, Count: 500})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, map[string]string{
		"latitude":   "max=90",
		"num_events": "max=100",
	}, fields)
}

func TestValidate_Required(t *testing.T) {
	err := New().Validate(&sample{})

	assert.Equal(t, map[string]string{"latitude": "required"}, FieldErrors(err))
}

func TestValidate_Valid(t *testing.T) {
	lat := 33.75

	assert.NoError(t, New().Validate(&sample{Latitude: &lat}))
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}
