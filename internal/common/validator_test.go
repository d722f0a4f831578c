package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "must be between 3 and 100 characters long")
	v.Check(true, "description", "must be provided")

	assert.False(t, v.Valid())
	assert.Equal(t, ValidationError{Errors: map[string]string{"title": "must be provided"}}, v.ValidationError())
}

func TestProvided(t *testing.T) {
	empty := ""
	value := "value"

	assert.False(t, Provided(nil))
	assert.False(t, Provided(&empty))
	assert.True(t, Provided(&value))
}

func TestCheckStringLength(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.CheckStringLength("héllo", 1, 5))
	assert.True(t, v.CheckStringLength("日本語", 3, 3))
	assert.False(t, v.CheckStringLength("日本語", 1, 2))
	assert.False(t, v.CheckStringLength("", 1, 5))
}
