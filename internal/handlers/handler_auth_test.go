package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

var testUser = &domain.User{
	UserID:    2,
	FirstName: "Ana",
	LastName:  "Ruiz",
	Email:     "ana@example.com",
	RoleID:    domain.RoleAssistant,
	IsActive:  true,
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, "ana@example.com", "secret1").Return(testUser, nil).Once()
	suite.mockToken.On("GenerateAccessToken", mock.Anything, testUser).Return("signed-token", time.Now().Add(time.Hour), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ana@example.com", "password": "secret1"}, domain.Identity{})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &resp))
	suite.Equal("signed-token", resp.Token)
	suite.Equal(int64(2), resp.User.UserID)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, "ana@example.com", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("invalid email or password")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ana@example.com", "password": "wrong"}, domain.Identity{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("invalid email or password", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestLogin_MalformedEmail() {
	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "not-an-email", "password": "x"}, domain.Identity{})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	// the suite limiter allows two attempts per minute
	suite.mockUser.On("AuthenticateUser", mock.Anything, "ana@example.com", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("invalid email or password")).Twice()

	for i := 0; i < 2; i++ {
		w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ana@example.com", "password": "wrong"}, domain.Identity{})
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ana@example.com", "password": "wrong"}, domain.Identity{})

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.False(suite.decode(w).Success)
}

func (suite *HandlerTestSuite) TestMe() {
	suite.mockUser.On("GetUserByID", mock.Anything, int64(2)).Return(testUser, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/me", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &resp))
	suite.Equal("ana@example.com", resp.Email)
}

func (suite *HandlerTestSuite) TestGetUser_OtherUserForbiddenForNonAdministrator() {
	w := suite.do(http.MethodGet, "/api/v1/users/9", nil, "", assistantIdentity)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUser.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetUser_AdministratorReadsAnyone() {
	suite.mockUser.On("GetUserByID", mock.Anything, int64(2)).Return(testUser, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/2", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCreateUser_DuplicateEmail() {
	req := dto.CreateUserRequest{FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com", Password: "secret1", RoleID: 2}
	suite.mockUser.On("CreateUser", mock.Anything, req, adminIdentity).
		Return(nil, apperrors.NewConflictError("email already registered")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/users", req, adminIdentity)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("email already registered", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestCreateUser_Created() {
	req := dto.CreateUserRequest{FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com", Password: "secret1", RoleID: 2}
	suite.mockUser.On("CreateUser", mock.Anything, req, adminIdentity).Return(testUser, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/users", req, adminIdentity)

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(suite.decode(w).Success)
}

func (suite *HandlerTestSuite) TestListUsers_HidesPasswordHash() {
	suite.mockUser.On("ListUsers", mock.Anything, adminIdentity).Return([]domain.User{
		{UserID: 1, FirstName: "Root", PasswordHash: "$2a$10$hash", IsActive: true},
		{UserID: 7, FirstName: "Old", IsActive: false},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var users []dto.UserResponse
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &users))
	suite.Len(users, 2)
	suite.False(users[1].IsActive)
	suite.NotContains(w.Body.String(), "$2a$10$hash")
}

func (suite *HandlerTestSuite) TestUpdateUser_PassesFieldsThrough() {
	suite.mockUser.On("UpdateUser", mock.Anything, int64(2), mock.MatchedBy(func(req dto.UpdateUserRequest) bool {
		return req.Password != nil && *req.Password == "newsecret" && req.FirstName == nil
	}), assistantIdentity).Return(nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/users/2", gin.H{"password": "newsecret"}, assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("User updated successfully", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestUpdateUser_Forbidden() {
	suite.mockUser.On("UpdateUser", mock.Anything, int64(9), mock.Anything, assistantIdentity).
		Return(apperrors.NewForbiddenError("you can only update your own account")).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/users/9", gin.H{"firstName": "Eve"}, assistantIdentity)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateUser() {
	suite.mockUser.On("DeactivateUser", mock.Anything, int64(9), adminIdentity).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/9", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(suite.decode(w).Success)
}

func (suite *HandlerTestSuite) TestDeactivateUser_NotFound() {
	suite.mockUser.On("DeactivateUser", mock.Anything, int64(99), adminIdentity).Return(apperrors.NewNotFoundError("user")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/99", nil, "", adminIdentity)

	suite.Equal(http.StatusNotFound, w.Code)
}
