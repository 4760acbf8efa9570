package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	name         Name
	email        Email
	passwordHash string
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name Name, email Email, passwordHash string, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
}

func Reconstruct(id uuid.UUID, name, email, passwordHash string, lastLogin *time.Time, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         Name{value: name},
		email:        Email{value: email},
		passwordHash: passwordHash,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ChangeProfile applies the non-nil fields and reports whether the email changed.
func (u *User) ChangeProfile(name *Name, email *Email, now time.Time) (emailChanged bool) {
	if name != nil {
		u.name = *name
	}
	if email != nil && email.Value() != u.email.Value() {
		u.email = *email
		emailChanged = true
	}
	u.updatedAt = now
	return emailChanged
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Name() Name            { return u.name }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
