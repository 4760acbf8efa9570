package api

import (
	"errors"
	"net/http"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	idempotencyKeyHeader     = "Idempotency-Key"
	idempotentReplayedHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLength  = 255
)

var errIdempotencyKeyTooLong = errors.New("idempotency key must be at most 255 characters")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book an item for a period. The booking starts in WAITING.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Key for safe client retries"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	idempotencyKey := c.GetHeader(idempotencyKeyHeader)
	if len(idempotencyKey) > maxIdempotencyKeyLength {
		httperr.AbortWithError(c, http.StatusBadRequest, errIdempotencyKeyTooLong, errIdempotencyKeyTooLong.Error(), nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header(idempotentReplayedHeader, "true")
		status = http.StatusOK
	}
	c.Header("Location", "/api/bookings/"+result.Booking.ID.String())
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

// @Summary Approve or reject booking
// @Description Item owner decides a WAITING booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param approved query bool true "true to approve, false to reject"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c)
	if !ok {
		return
	}
	approved, ok := approvedParam(c)
	if !ok {
		return
	}

	view, err := h.cmds.Decide(c.Request.Context(), bookingID, userID, approved)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Visible to the booker and the item owner only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings made by the caller
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) ListByBooker(c *gin.Context) {
	h.list(c, false)
}

// @Summary List bookings of the caller's items
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/owner [get]
func (h *BookingHandler) ListByOwner(c *gin.Context) {
	h.list(c, true)
}

func (h *BookingHandler) list(c *gin.Context, asOwner bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	state, err := booking.ParseState(c.Query("state"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	views, err := h.q.List(c.Request.Context(), userID, state, asOwner)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
