package validate_test

import (
	"testing"

	"github.com/careerloft/careerloft/pkg/validate"
	"github.com/stretchr/testify/assert"
)

type signupInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Website  string `json:"website"  validate:"nullable,url"`
	Role     string `json:"role"     validate:"required,in=client,writer,admin"`
}

func TestStructPasses(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "jordan",
		Email:    "jordan@example.com",
		Password: "longenoughpw",
		Role:     "client",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequiredUsesJSONName(t *testing.T) {
	errs := validate.Struct(signupInput{})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "Username")
}

func TestNullableSkipsEmpty(t *testing.T) {
	in := signupInput{
		Username: "jordan", Email: "jordan@example.com",
		Password: "longenoughpw", Role: "client",
	}
	assert.NotContains(t, validate.Struct(in), "website")

	in.Website = "not a url"
	assert.Contains(t, validate.Struct(in), "website")

	in.Website = "https://careerloft.example.com"
	assert.NotContains(t, validate.Struct(in), "website")
}

func TestMinMax(t *testing.T) {
	in := signupInput{
		Username: "ab", Email: "a@b.co", Password: "longenoughpw", Role: "client",
	}
	assert.Contains(t, validate.Struct(in), "username")

	type limits struct {
		Price int `json:"price" validate:"required,min=1,max=10000"`
	}
	assert.Contains(t, validate.Struct(limits{Price: 20000}), "price")
	assert.False(t, validate.HasErrors(validate.Struct(limits{Price: 199})))
}

func TestInListWithCommas(t *testing.T) {
	in := signupInput{
		Username: "jordan", Email: "jordan@example.com",
		Password: "longenoughpw", Role: "superuser",
	}
	errs := validate.Struct(in)
	assert.Contains(t, errs, "role")

	in.Role = "writer"
	assert.NotContains(t, validate.Struct(in), "role")
}

func TestFirstFailingRuleWins(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "x", Email: "bad", Password: "short", Role: "client",
	})
	assert.Len(t, errs, 3)
}
