package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

type LecturerRequest struct {
	Name        string `json:"name" binding:"required"`
	Surname     string `json:"surname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"omitempty,min=6"`
	Phone       string `json:"phone"`
	MeetingRoom string `json:"meeting_room"`
}

// lecturerView hides credential fields from list responses.
type lecturerView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	MeetingRoom string `json:"meeting_room,omitempty"`
}

// @Summary		List lecturers
// @Tags			lecturers
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		lecturerView			"Lecturers"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lecturers [get]
func ListLecturers(c *gin.Context) {
	var users []models.User
	err := storage.DB.Where("role = ?", models.RoleLecturer).Limit(maxRows).Order("surname, name").Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load lecturers",
		})
		return
	}

	views := make([]lecturerView, 0, len(users))
	for _, u := range users {
		views = append(views, lecturerView{
			ID: u.ID, Name: u.Name, Surname: u.Surname,
			Email: u.Email, Phone: u.Phone, MeetingRoom: u.MeetingRoom,
		})
	}
	c.JSON(http.StatusOK, views)
}

// @Summary		Create lecturer account
// @Description	Provisions a lecturer user; admin only
// @Tags			lecturers
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			lecturer	body		LecturerRequest			true	"Lecturer"
// @Success		201			{object}	lecturerView			"Created"
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR or EMAIL_EXISTS"
// @Router			/api/lecturers [post]
func CreateLecturer(c *gin.Context) {
	var req LecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "password is required",
		})
		return
	}

	var existing models.User
	if err := storage.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "EMAIL_EXISTS",
			Message: "a user with this email already exists",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "PASSWORD_HASH_ERROR",
			Message: "could not hash password",
		})
		return
	}

	user := models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleLecturer,
		Phone:        req.Phone,
		MeetingRoom:  req.MeetingRoom,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create lecturer",
		})
		return
	}

	ws.HubInstance.Notify("lecturers", "insert", user.ID)
	c.JSON(http.StatusCreated, lecturerView{
		ID: user.ID, Name: user.Name, Surname: user.Surname,
		Email: user.Email, Phone: user.Phone, MeetingRoom: user.MeetingRoom,
	})
}

// @Summary		Update lecturer
// @Tags			lecturers
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id			path		int						true	"Lecturer id"
// @Param			lecturer	body		LecturerRequest			true	"Lecturer"
// @Success		200			{object}	lecturerView			"Updated"
// @Failure		404			{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/lecturers/{id} [put]
func UpdateLecturer(c *gin.Context) {
	var user models.User
	err := storage.DB.Where("role = ?", models.RoleLecturer).First(&user, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "lecturer not found",
		})
		return
	}

	var req LecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	user.Name = req.Name
	user.Surname = req.Surname
	user.Email = req.Email
	user.Phone = req.Phone
	user.MeetingRoom = req.MeetingRoom
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "PASSWORD_HASH_ERROR",
				Message: "could not hash password",
			})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update lecturer",
		})
		return
	}

	ws.HubInstance.Notify("lecturers", "update", user.ID)
	c.JSON(http.StatusOK, lecturerView{
		ID: user.ID, Name: user.Name, Surname: user.Surname,
		Email: user.Email, Phone: user.Phone, MeetingRoom: user.MeetingRoom,
	})
}

// @Summary		Delete lecturer
// @Tags			lecturers
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Lecturer id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/lecturers/{id} [delete]
func DeleteLecturer(c *gin.Context) {
	var user models.User
	err := storage.DB.Where("role = ?", models.RoleLecturer).First(&user, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "lecturer not found",
		})
		return
	}

	if err := storage.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not delete lecturer",
		})
		return
	}

	invalidateScopeCache(user.ID)
	ws.HubInstance.Notify("lecturers", "delete", user.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "lecturer deleted"})
}
