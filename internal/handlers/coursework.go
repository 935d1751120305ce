package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"unidash/internal/access"
	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

const dateLayout = "2006-01-02"

type CourseworkRequest struct {
	CourseID    uint   `json:"course_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"` // YYYY-MM-DD
	MaxScore    int    `json:"max_score"`
}

// @Summary		List assignments
// @Description	Lists coursework visible to the caller; lecturers only see their departments
// @Tags			coursework
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Assignment		"Assignments"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/assignments [get]
func ListAssignments(c *gin.Context) {
	var assignments []models.Assignment
	err := storage.DB.Preload("Course").Limit(maxRows).Order("due_date").Find(&assignments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load assignments",
		})
		return
	}

	c.JSON(http.StatusOK, access.Filter(callerScope(c), assignments))
}

// @Summary		Create assignment
// @Tags			coursework
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			assignment	body		CourseworkRequest		true	"Assignment"
// @Success		201			{object}	models.Assignment		"Created"
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Router			/api/assignments [post]
func CreateAssignment(c *gin.Context) {
	var req CourseworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	due, err := time.ParseInLocation(dateLayout, req.DueDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "due_date must be YYYY-MM-DD",
		})
		return
	}

	assignment := models.Assignment{
		CourseID:    req.CourseID,
		LecturerID:  c.GetUint("userID"),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		MaxScore:    req.MaxScore,
	}
	if err := storage.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create assignment",
		})
		return
	}

	ws.HubInstance.Notify("assignments", "insert", assignment.ID)
	c.JSON(http.StatusCreated, assignment)
}

// @Summary		Update assignment
// @Tags			coursework
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id			path		int						true	"Assignment id"
// @Param			assignment	body		CourseworkRequest		true	"Assignment"
// @Success		200			{object}	models.Assignment		"Updated"
// @Failure		404			{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/assignments/{id} [put]
func UpdateAssignment(c *gin.Context) {
	var assignment models.Assignment
	if err := storage.DB.First(&assignment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "assignment not found",
		})
		return
	}

	var req CourseworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	due, err := time.ParseInLocation(dateLayout, req.DueDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "due_date must be YYYY-MM-DD",
		})
		return
	}

	assignment.CourseID = req.CourseID
	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = due
	assignment.MaxScore = req.MaxScore

	if err := storage.DB.Save(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update assignment",
		})
		return
	}

	ws.HubInstance.Notify("assignments", "update", assignment.ID)
	c.JSON(http.StatusOK, assignment)
}

// @Summary		Delete assignment
// @Tags			coursework
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Assignment id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/assignments/{id} [delete]
func DeleteAssignment(c *gin.Context) {
	var assignment models.Assignment
	if err := storage.DB.First(&assignment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "assignment not found",
		})
		return
	}

	if err := storage.DB.Delete(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not delete assignment",
		})
		return
	}

	ws.HubInstance.Notify("assignments", "delete", assignment.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "assignment deleted"})
}
