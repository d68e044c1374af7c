// api/models/user_models.go
package models

import (
	"strings"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

// CreateUserRequest is a form submission.
type CreateUserRequest struct {
	FullName      string `json:"fullName" binding:"required,notblank,max=100"`
	Email         string `json:"email" binding:"required,email,max=50"`
	Gender        string `json:"gender" binding:"required,oneof=Male Female Others"`
	LoveReactFlag bool   `json:"loveReactFlag"`
}

// ToDomain converts the request into a User ready to store.
func (r *CreateUserRequest) ToDomain() *domain.User {
	return &domain.User{
		FullName:      strings.TrimSpace(r.FullName),
		Email:         strings.TrimSpace(r.Email),
		Gender:        r.Gender,
		LoveReactFlag: r.LoveReactFlag,
	}
}

// UpdateUserRequest is the body of PUT /users/:id. Absent attributes keep
// their stored value.
type UpdateUserRequest struct {
	FullName      *string `json:"fullName" binding:"omitempty,notblank,max=100"`
	Email         *string `json:"email" binding:"omitempty,email,max=50"`
	Gender        *string `json:"gender" binding:"omitempty,oneof=Male Female Others"`
	LoveReactFlag *bool   `json:"loveReactFlag"`
}

// ApplyTo merges the request into user.
func (r *UpdateUserRequest) ApplyTo(user *domain.User) {
	if r.FullName != nil {
		user.FullName = strings.TrimSpace(*r.FullName)
	}
	if r.Email != nil {
		user.Email = strings.TrimSpace(*r.Email)
	}
	if r.Gender != nil {
		user.Gender = *r.Gender
	}
	if r.LoveReactFlag != nil {
		user.LoveReactFlag = *r.LoveReactFlag
	}
}
