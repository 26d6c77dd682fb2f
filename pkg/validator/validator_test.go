package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `validate:"required,max=10"`
	Time  string `validate:"required,hhmm"`
	Email string `validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(sample{Name: "Ana", Time: "09:30"}))

	err := v.Struct(sample{Name: "", Time: "9:30", Email: "nope"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Name: failed 'required'")
		assert.Contains(t, err.Error(), "Time: failed 'hhmm'")
		assert.Contains(t, err.Error(), "Email: failed 'email'")
	}

	assert.Error(t, v.Struct(sample{Name: "Ana", Time: "24:00"}))
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("a@b.co", "email"))
	assert.Error(t, v.Var("a@", "email"))
}
