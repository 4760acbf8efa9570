package request

import (
	"shareit/internal/domain/item"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=2000"`
	Available   *bool  `json:"available" binding:"required"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Available   *bool   `json:"available"`
}

func (r *UpdateItemRequest) ToDomain() item.Changes {
	return item.Changes{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}
