package api

import (
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	cmds     commands.ItemCommands
	comments commands.CommentCommands
	q        queries.ItemQueries
}

func NewItemHandler(cmds commands.ItemCommands, comments commands.CommentCommands, q queries.ItemQueries) *ItemHandler {
	return &ItemHandler{cmds: cmds, comments: comments, q: q}
}

// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Router /api/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/items/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary Update item
// @Description Partial update, owner only
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Changes"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Update(c.Request.Context(), itemID, req, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Get item
// @Description Booking dates are filled for the owner only
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), itemID, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary List caller's items
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ItemResponse
// @Router /api/items [get]
func (h *ItemHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	views, err := h.q.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Search available items
// @Tags items
// @Produce json
// @Param text query string false "Case-insensitive text"
// @Success 200 {array} resdto.ItemResponse
// @Router /api/items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	views, err := h.q.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Comment on item
// @Description Requires a completed approved booking of the item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment"
// @Success 201 {object} resdto.CommentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/items/{id}/comments [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.comments.Create(c.Request.Context(), itemID, userID, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCommentView(view))
}
