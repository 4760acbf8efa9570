//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"shareit/internal/handler/api"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/testutil/builder"
	"shareit/internal/testutil/httptest"
	commandsmock "shareit/internal/testutil/mock/commands"
	queriesmock "shareit/internal/testutil/mock/queries"
	"shareit/internal/testutil/testutil"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
	userID       uuid.UUID
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	handler := api.NewUserHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	s.router.POST("/users", handler.Register)
	s.router.GET("/users/me", fakeAuth(s.userID), handler.Me)
	s.router.PATCH("/users/me", fakeAuth(s.userID), handler.UpdateMe)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestRegister() {
	url := "/users"
	b := builder.NewUserBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal(view.Email, body.Email)
		s.NotContains(rec.Body.String(), "password")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "name too long", mutate: testutil.Field("name", strings.Repeat("a", 256))},
			{name: "invalid email", mutate: testutil.Field("email", "nope")},
			{name: "short password", mutate: testutil.Field("password", "1234567")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "BAD_REQUEST")
			})
		}
	})

	s.Run("error: 409 Conflict on duplicate email", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "email already in use")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "CONFLICT")
	})
}

func (s *UserHandlerTestSuite) TestMe() {
	url := "/users/me"
	view := builder.NewUserBuilder().BuildView()

	s.Run("success: returns current user", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Email, body["email"])
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "user not found", queryError: queries.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "user not found"},
			{name: "user inactive", queryError: queries.ErrUserInactive, expectedStatus: http.StatusForbidden, expectedMsg: "user inactive"},
			{name: "internal server error", queryError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *UserHandlerTestSuite) TestUpdateMe() {
	url := "/users/me"
	view := builder.NewUserBuilder().WithName("Renamed").BuildView()

	s.Run("success: partial update", func() {
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), s.userID, gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"name": "Renamed"}, bearer)

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Renamed", body.Name)
	})

	s.Run("error: 400 on invalid email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"email": "bad"}, bearer)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "BAD_REQUEST")
	})

	s.Run("error: 409 when the new email is taken", func() {
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), s.userID, gomock.Any()).Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"email": "taken@example.com"}, bearer)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "CONFLICT")
	})
}
