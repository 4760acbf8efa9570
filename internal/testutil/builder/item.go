//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/item"
	reqdto "shareit/internal/handler/dto/request"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Drill",
		Description: "Cordless drill with two batteries",
		Available:   true,
		CreatedAt:   time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

func (b *ItemBuilder) WithOwner(ownerID uuid.UUID) *ItemBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *ItemBuilder) Unavailable() *ItemBuilder {
	b.Available = false
	return b
}

// Build methods
func (b *ItemBuilder) BuildDomain() *item.Item {
	return item.Reconstruct(b.ID, b.OwnerID, b.Name, b.Description, b.Available, b.CreatedAt, b.CreatedAt)
}

func (b *ItemBuilder) BuildSnapshot() *shared.ItemSnapshot {
	return &shared.ItemSnapshot{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ItemBuilder) BuildInfra() sqlc.Items {
	return sqlc.Items{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		CreatedAt:   pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		Comments:    []*queries.CommentView{},
	}
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := b.Available
	return reqdto.CreateItemRequest{
		Name:        b.Name,
		Description: b.Description,
		Available:   &available,
	}
}
