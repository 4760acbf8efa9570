package request

// Text length is checked by the domain so the caller gets its message.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
