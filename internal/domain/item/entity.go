package item

import (
	"strings"
	"time"
	"unicode/utf8"

	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/patch"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
)

var (
	ErrEmptyName          = errs.BadRequest("item name cannot be empty")
	ErrNameTooLong        = errs.BadRequest("item name exceeds maximum length")
	ErrEmptyDescription   = errs.BadRequest("item description cannot be empty")
	ErrDescriptionTooLong = errs.BadRequest("item description exceeds maximum length")
	ErrNotOwner           = errs.Forbidden("item does not belong to the user")
)

type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(ownerID uuid.UUID, name, description string, available bool, now time.Time) (*Item, error) {
	n, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	d, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}

	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        n,
		description: d,
		available:   available,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an item from storage without validation.
func Reconstruct(id, ownerID uuid.UUID, name, description string, available bool, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

type Changes struct {
	Name        *string
	Description *string
	Available   *bool
}

// Apply updates the fields present in ch. Only the owner may change an item.
// Nothing is modified when validation fails.
func (i *Item) Apply(actorID uuid.UUID, ch Changes, now time.Time) error {
	if !i.IsOwnedBy(actorID) {
		return ErrNotOwner
	}

	name, err := normalizeName(patch.Coalesce(ch.Name, i.name))
	if err != nil {
		return err
	}
	description, err := normalizeDescription(patch.Coalesce(ch.Description, i.description))
	if err != nil {
		return err
	}

	i.name = name
	i.description = description
	i.available = patch.Coalesce(ch.Available, i.available)
	i.updatedAt = now
	return nil
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool { return i.ownerID == userID }

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) OwnerID() uuid.UUID   { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

func normalizeName(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(t) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return t, nil
}

func normalizeDescription(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ErrEmptyDescription
	}
	if utf8.RuneCountInString(t) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return t, nil
}
