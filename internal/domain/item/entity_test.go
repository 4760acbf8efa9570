//go:build unit

package item_test

import (
	"strings"
	"testing"
	"time"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/ptr"
	"shareit/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func TestNewItem(t *testing.T) {
	ownerID := uuid.New()

	t.Run("trims and keeps fields", func(t *testing.T) {
		it, err := item.NewItem(ownerID, "  Drill ", " Cordless ", true, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, it.ID())
		assert.Equal(t, ownerID, it.OwnerID())
		assert.Equal(t, "Drill", it.Name())
		assert.Equal(t, "Cordless", it.Description())
		assert.True(t, it.Available())
		assert.True(t, it.IsOwnedBy(ownerID))
	})

	tests := []struct {
		name        string
		itemName    string
		description string
		errIs       error
	}{
		{"blank name", " ", "desc", item.ErrEmptyName},
		{"long name", strings.Repeat("n", item.MaxNameLength+1), "desc", item.ErrNameTooLong},
		{"blank description", "Drill", "", item.ErrEmptyDescription},
		{"long description", "Drill", strings.Repeat("d", item.MaxDescriptionLength+1), item.ErrDescriptionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := item.NewItem(ownerID, tt.itemName, tt.description, true, now)

			require.Nil(t, it)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestItem_Apply(t *testing.T) {
	t.Run("absent fields are kept", func(t *testing.T) {
		ib := builder.NewItemBuilder()
		it := ib.BuildDomain()

		err := it.Apply(ib.OwnerID, item.Changes{Available: ptr.Of(false)}, now)
		require.NoError(t, err)

		assert.Equal(t, ib.Name, it.Name())
		assert.Equal(t, ib.Description, it.Description())
		assert.False(t, it.Available())
		assert.Equal(t, now, it.UpdatedAt())
	})

	t.Run("all fields", func(t *testing.T) {
		ib := builder.NewItemBuilder()
		it := ib.BuildDomain()

		err := it.Apply(ib.OwnerID, item.Changes{
			Name:        ptr.Of("Hammer"),
			Description: ptr.Of("Steel hammer"),
			Available:   ptr.Of(false),
		}, now)
		require.NoError(t, err)

		assert.Equal(t, "Hammer", it.Name())
		assert.Equal(t, "Steel hammer", it.Description())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		ib := builder.NewItemBuilder()
		it := ib.BuildDomain()

		err := it.Apply(uuid.New(), item.Changes{Name: ptr.Of("Hammer")}, now)

		require.ErrorIs(t, err, item.ErrNotOwner)
		assert.Equal(t, ib.Name, it.Name())
	})

	t.Run("invalid change leaves item untouched", func(t *testing.T) {
		ib := builder.NewItemBuilder()
		it := ib.BuildDomain()

		err := it.Apply(ib.OwnerID, item.Changes{Name: ptr.Of("Hammer"), Description: ptr.Of("  ")}, now)

		require.ErrorIs(t, err, item.ErrEmptyDescription)
		assert.Equal(t, ib.Name, it.Name())
		assert.Equal(t, ib.CreatedAt, it.UpdatedAt())
	})
}
