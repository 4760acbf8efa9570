//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/handler/api"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/testutil/builder"
	"shareit/internal/testutil/httptest"
	commandsmock "shareit/internal/testutil/mock/commands"
	queriesmock "shareit/internal/testutil/mock/queries"
	"shareit/internal/testutil/testutil"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockItemCommands
	mockComments *commandsmock.MockCommentCommands
	mockQueries  *queriesmock.MockItemQueries
	userID       uuid.UUID
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockItemCommands(s.mockCtrl)
	s.mockComments = commandsmock.NewMockCommentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockItemQueries(s.mockCtrl)
	handler := api.NewItemHandler(s.mockCommands, s.mockComments, s.mockQueries)
	s.userID = uuid.New()

	s.router.GET("/items/search", handler.Search)
	authed := s.router.Group("/items", fakeAuth(s.userID))
	authed.POST("", handler.Create)
	authed.GET("", handler.ListMine)
	authed.GET("/:id", handler.Get)
	authed.PATCH("/:id", handler.Update)
	authed.POST("/:id/comments", handler.AddComment)
}

func (s *ItemHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

func (s *ItemHandlerTestSuite) TestCreate() {
	url := "/items"
	b := builder.NewItemBuilder().WithOwner(s.userID)
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.Name, body.Name)
		s.NotNil(body.Comments)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/items/" + view.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "missing description", mutate: testutil.Field("description", nil)},
			{name: "missing available", mutate: testutil.Field("available", nil)},
			{name: "name over 255", mutate: testutil.Field("name", strings.Repeat("n", 256))},
			{name: "description over 2000", mutate: testutil.Field("description", strings.Repeat("d", 2001))},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), bearer)
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "BAD_REQUEST")
			})
		}
	})

	s.Run("success: available=false is a value, not a missing field", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.userID).Return(view, nil).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("available", false))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, bearer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})
}

func (s *ItemHandlerTestSuite) TestUpdate() {
	view := builder.NewItemBuilder().WithOwner(s.userID).BuildView()
	url := "/items/" + view.ID.String()

	s.Run("success: partial update", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any(), s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"available": false}, bearer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 for someone else's item", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any(), s.userID).Return(nil, item.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"name": "Mine"}, bearer)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})
}

func (s *ItemHandlerTestSuite) TestGet() {
	last := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	view := builder.NewItemBuilder().WithOwner(s.userID).BuildView()
	view.LastBooking = &last
	view.Comments = []*queries.CommentView{{ID: uuid.New(), Text: "Solid", AuthorName: "Bob", Created: last}}
	url := "/items/" + view.ID.String()

	s.Run("success: booking dates and comments", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)

		var body resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.LastBooking)
		s.True(last.Equal(*body.LastBooking))
		s.Nil(body.NextBooking)
		s.Require().Len(body.Comments, 1)
		s.Equal("Bob", body.Comments[0].AuthorName)
	})

	s.Run("error: 404 for an unknown item", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(nil, queries.ErrItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "item not found")
	})
}

func (s *ItemHandlerTestSuite) TestListAndSearch() {
	views := []*queries.ItemView{builder.NewItemBuilder().WithOwner(s.userID).BuildView()}

	s.Run("success: lists caller's items", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items", nil, bearer)

		var body []resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: search needs no token", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), "drill").Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/search?text=drill", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: blank search returns an empty array", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), "").Return([]*queries.ItemView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/search", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})
}

func (s *ItemHandlerTestSuite) TestAddComment() {
	itemID := uuid.New()
	url := "/items/" + itemID.String() + "/comments"
	created := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	view := &queries.CommentView{ID: uuid.New(), ItemID: itemID, Text: "Great", AuthorName: "Bob", Created: created}

	s.Run("success: returns 201 Created", func() {
		s.mockComments.EXPECT().Create(gomock.Any(), itemID, s.userID, gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"text": "Great"}, bearer)

		var body resdto.CommentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("Great", body.Text)
		s.Equal("Bob", body.AuthorName)
		s.True(created.Equal(body.Created))
	})

	s.Run("error: 400 on missing text", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{}, bearer)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "BAD_REQUEST")
	})

	s.Run("error: maps eligibility errors", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "no completed booking", err: comment.ErrNotEligible, expectedStatus: http.StatusBadRequest, expectedMsg: "only users with a completed approved booking can comment on the item"},
			{name: "own item", err: comment.ErrOwnItem, expectedStatus: http.StatusConflict, expectedMsg: "cannot comment on own item"},
			{name: "blank text", err: comment.ErrEmptyText, expectedStatus: http.StatusBadRequest, expectedMsg: "comment text cannot be empty"},
			{name: "unknown item", err: queries.ErrItemNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "item not found"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockComments.EXPECT().Create(gomock.Any(), itemID, s.userID, gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"text": "  "}, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
