package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerPayload struct {
	Username       string `json:"username" validate:"required,min=3,max=80"`
	Email          string `json:"email" validate:"required,email"`
	EducationLevel string `json:"education_level" validate:"omitempty,education_level"`
	Curriculum     string `json:"curriculum" validate:"omitempty,curriculum"`
}

type askPayload struct {
	Kind string `json:"kind" validate:"omitempty,request_kind"`
}

type userFilter struct {
	Role string `json:"role" validate:"omitempty,role"`
}

func TestValidatePassesCleanPayload(t *testing.T) {
	errs := Validate(&registerPayload{
		Username:       "jane",
		Email:          "jane@example.com",
		EducationLevel: "Junior Secondary",
		Curriculum:     "CBC",
	})
	assert.Nil(t, errs)
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	errs := Validate(&registerPayload{Username: "ab", Email: "not-an-email"})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
}

func TestCurriculumTag(t *testing.T) {
	assert.Nil(t, Validate(&registerPayload{Username: "jane", Email: "j@e.com", Curriculum: "8-4-4"}))
	assert.Contains(t, Validate(&registerPayload{Username: "jane", Email: "j@e.com", Curriculum: "IB"}), "curriculum")
}

func TestEducationLevelTag(t *testing.T) {
	assert.Contains(t,
		Validate(&registerPayload{Username: "jane", Email: "j@e.com", EducationLevel: "Kindergarten"}),
		"education_level")
}

func TestRoleTag(t *testing.T) {
	assert.Nil(t, Validate(&userFilter{Role: "student"}))
	assert.Nil(t, Validate(&userFilter{Role: "admin"}))
	assert.Nil(t, Validate(&userFilter{}))
	assert.Contains(t, Validate(&userFilter{Role: "teacher"}), "role")
}

func TestRequestKindTag(t *testing.T) {
	assert.Nil(t, Validate(&askPayload{Kind: "exam"}))
	assert.Nil(t, Validate(&askPayload{}))
	assert.Contains(t, Validate(&askPayload{Kind: "poem"}), "kind")
}
