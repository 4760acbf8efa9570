package request

import (
	"shareit/internal/domain/user"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ToDomain returns nil for fields that were not sent.
func (r *UpdateUserRequest) ToDomain() (*user.Name, *user.Email, error) {
	var (
		name  *user.Name
		email *user.Email
	)
	if r.Name != nil {
		n, err := user.NewName(*r.Name)
		if err != nil {
			return nil, nil, err
		}
		name = &n
	}
	if r.Email != nil {
		e, err := user.NewEmail(*r.Email)
		if err != nil {
			return nil, nil, err
		}
		email = &e
	}
	return name, email, nil
}
