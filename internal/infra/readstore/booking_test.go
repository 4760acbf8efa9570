//go:build unit

package readstore

import (
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		party     queries.Party
		filters   []exp.Expression
		wantParts []string
		wantArgs  []any
	}{
		{
			name:      "all as booker",
			party:     queries.Party{UserID: userID},
			wantParts: []string{`"b"."booker_id" = $1`},
			wantArgs:  []any{userID.String()},
		},
		{
			name:      "all as owner",
			party:     queries.Party{UserID: userID, AsOwner: true},
			wantParts: []string{`"i"."owner_id" = $1`},
			wantArgs:  []any{userID.String()},
		},
		{
			name:      "current",
			party:     queries.Party{UserID: userID},
			filters:   []exp.Expression{goqu.I(colBookingStart).Lt(now), goqu.I(colBookingEnd).Gt(now)},
			wantParts: []string{`"b"."start_time" < $2`, `"b"."end_time" > $3`},
			wantArgs:  []any{userID.String(), now, now},
		},
		{
			name:      "past",
			party:     queries.Party{UserID: userID, AsOwner: true},
			filters:   []exp.Expression{goqu.I(colBookingEnd).Lt(now)},
			wantParts: []string{`"i"."owner_id" = $1`, `"b"."end_time" < $2`},
			wantArgs:  []any{userID.String(), now},
		},
		{
			name:      "future",
			party:     queries.Party{UserID: userID},
			filters:   []exp.Expression{goqu.I(colBookingStart).Gt(now)},
			wantParts: []string{`"b"."start_time" > $2`},
			wantArgs:  []any{userID.String(), now},
		},
		{
			name:      "by status",
			party:     queries.Party{UserID: userID},
			filters:   []exp.Expression{goqu.I(colBookingStatus).Eq(booking.StatusRejected.String())},
			wantParts: []string{`"b"."status" = $2`},
			wantArgs:  []any{userID.String(), "REJECTED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildListQuery(tt.party, tt.filters...)
			require.NoError(t, err)

			assert.Contains(t, sql, `FROM "bookings" AS "b"`)
			assert.Contains(t, sql, `INNER JOIN "items" AS "i"`)
			assert.Contains(t, sql, `ORDER BY "b"."start_time" DESC, "b"."id" DESC`)
			for _, part := range tt.wantParts {
				assert.Contains(t, sql, part)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
