package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"unidash/internal/auth"
	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary		Sign in
// @Description	Verifies email and password and returns an access/refresh token pair
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		LoginRequest			true	"Credentials"
// @Success		200			{object}	response.TokenResponse	"Token pair"
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401			{object}	response.ErrorResponse	"INVALID_CREDENTIALS"
// @Failure		500			{object}	response.ErrorResponse	"TOKEN_GENERATION_ERROR"
// @Router			/auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	var user models.User
	if err := storage.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    response.CodeInvalidCreds,
			Message: "wrong email or password",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    response.CodeInvalidCreds,
			Message: "wrong email or password",
		})
		return
	}

	pair, err := auth.IssueTokens(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "could not issue tokens",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary		Refresh tokens
// @Description	Exchanges a valid refresh token for a new token pair
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			refresh_token	body		RefreshTokenRequest		true	"Refresh token"
// @Success		200				{object}	response.TokenResponse	"New token pair"
// @Failure		400				{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401				{object}	response.ErrorResponse	"INVALID_REFRESH_TOKEN or USER_NOT_FOUND"
// @Failure		500				{object}	response.ErrorResponse	"TOKEN_GENERATION_ERROR"
// @Router			/auth/refresh [post]
func RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	userID, _, err := auth.ParseRefresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_REFRESH_TOKEN",
			Message: "invalid or expired refresh token",
		})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "user no longer exists",
		})
		return
	}

	// Role is re-read from the database so a role change takes effect on
	// the next refresh, not only after sign-out.
	pair, err := auth.IssueTokens(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "could not issue tokens",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// ProfileResponse is the resolved caller profile served by /auth/me.
type ProfileResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Surname     string              `json:"surname"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	MeetingRoom string              `json:"meeting_room,omitempty"`
	Departments []ProfileDepartment `json:"departments,omitempty"`
}

type ProfileDepartment struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// @Summary		Current profile
// @Description	Returns the signed-in user's profile with active department assignments
// @Tags			auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ProfileResponse			"Profile"
// @Failure		401	{object}	response.ErrorResponse	"USER_NOT_FOUND"
// @Router			/auth/me [get]
func Me(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "user no longer exists",
		})
		return
	}

	profile := ProfileResponse{
		ID:          user.ID,
		Name:        user.Name,
		Surname:     user.Surname,
		Email:       user.Email,
		Role:        user.Role,
		MeetingRoom: user.MeetingRoom,
	}

	if user.Role == models.RoleLecturer {
		var assignments []models.DepartmentAssignment
		storage.DB.Where("lecturer_id = ? AND active = ?", userID, true).Find(&assignments)
		for _, a := range assignments {
			profile.Departments = append(profile.Departments, ProfileDepartment{
				Code: a.DepartmentCode,
				Name: a.DepartmentName,
			})
		}
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary		Sign out
// @Description	Drops the cached profile; the client discards its tokens
// @Tags			auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Signed out"
// @Router			/auth/logout [post]
func Logout(c *gin.Context) {
	invalidateScopeCache(c.GetUint("userID"))
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "signed out"})
}
