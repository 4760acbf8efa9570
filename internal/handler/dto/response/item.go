package response

import (
	"time"

	"shareit/internal/usecase/queries"
)

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID.String(),
		Text:       v.Text,
		AuthorName: v.AuthorName,
		Created:    v.Created,
	}
}

type ItemResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"ownerId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Available   bool               `json:"available"`
	LastBooking *time.Time         `json:"lastBooking"`
	NextBooking *time.Time         `json:"nextBooking"`
	Comments    []*CommentResponse `json:"comments"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	comments := make([]*CommentResponse, len(v.Comments))
	for i, c := range v.Comments {
		comments[i] = FromCommentView(c)
	}
	return &ItemResponse{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		LastBooking: v.LastBooking,
		NextBooking: v.NextBooking,
		Comments:    comments,
	}
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	res := make([]*ItemResponse, len(views))
	for i, v := range views {
		res[i] = FromItemView(v)
	}
	return res
}
