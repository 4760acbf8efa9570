package response

import (
	"log/slog"
	"time"

	"shareit/internal/usecase/queries"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var res UserResponse
	if err := copyView(&res, v); err != nil {
		slog.Error("failed to map user view", "error", err.Error())
	}
	return &res
}
