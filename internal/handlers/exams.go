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

type ExamRequest struct {
	CourseID  uint   `json:"course_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Venue     string `json:"venue"`
	MaxScore  int    `json:"max_score"`
}

// @Summary		List exams
// @Description	Lists exams visible to the caller; lecturers only see their departments
// @Tags			exams
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Exam				"Exams"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/exams [get]
func ListExams(c *gin.Context) {
	var exams []models.Exam
	if err := storage.DB.Preload("Course").Limit(maxRows).Order("date, start_time").Find(&exams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load exams",
		})
		return
	}

	c.JSON(http.StatusOK, access.Filter(callerScope(c), exams))
}

// @Summary		Create exam
// @Tags			exams
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			exam	body		ExamRequest				true	"Exam"
// @Success		201		{object}	models.Exam				"Created"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Router			/api/exams [post]
func CreateExam(c *gin.Context) {
	var req ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "date must be YYYY-MM-DD",
		})
		return
	}

	exam := models.Exam{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Venue:     req.Venue,
		MaxScore:  req.MaxScore,
	}
	if err := storage.DB.Create(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create exam",
		})
		return
	}

	ws.HubInstance.Notify("exams", "insert", exam.ID)
	c.JSON(http.StatusCreated, exam)
}

// @Summary		Update exam
// @Tags			exams
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		int						true	"Exam id"
// @Param			exam	body		ExamRequest				true	"Exam"
// @Success		200		{object}	models.Exam				"Updated"
// @Failure		404		{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/exams/{id} [put]
func UpdateExam(c *gin.Context) {
	var exam models.Exam
	if err := storage.DB.First(&exam, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "exam not found",
		})
		return
	}

	var req ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "date must be YYYY-MM-DD",
		})
		return
	}

	exam.CourseID = req.CourseID
	exam.Title = req.Title
	exam.Date = date
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime
	exam.Venue = req.Venue
	exam.MaxScore = req.MaxScore

	if err := storage.DB.Save(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update exam",
		})
		return
	}

	ws.HubInstance.Notify("exams", "update", exam.ID)
	c.JSON(http.StatusOK, exam)
}

// @Summary		Delete exam
// @Tags			exams
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Exam id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/exams/{id} [delete]
func DeleteExam(c *gin.Context) {
	var exam models.Exam
	if err := storage.DB.First(&exam, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "exam not found",
		})
		return
	}

	if err := storage.DB.Delete(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not delete exam",
		})
		return
	}

	ws.HubInstance.Notify("exams", "delete", exam.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "exam deleted"})
}
