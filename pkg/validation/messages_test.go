package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Age      int    `json:"age" validate:"gte=18"`
}

func TestMessages(t *testing.T) {
	v := validator.New()
	Register(v)

	err := v.Struct(signup{Email: "nope", Password: "123", Age: 3})
	got := Messages(err)

	assert.Equal(t, []string{
		"Please provide a name",
		"Please provide a valid email",
		"Password must be at least 6 characters",
		"age must be greater than or equal to 18",
	}, got)
}

func TestMessages_NonValidationError(t *testing.T) {
	got := Messages(errors.New("unexpected EOF"))
	if len(got) != 1 || got[0] != "Invalid request body" {
		t.Errorf("Unexpected messages: %v", got)
	}
}
