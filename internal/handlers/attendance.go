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

type AttendanceMark struct {
	StudentID uint `json:"student_id" binding:"required"`
	Present   bool `json:"present"`
}

type AttendanceRequest struct {
	CourseID  uint             `json:"course_id" binding:"required"`
	LectureID *uint            `json:"lecture_id"`
	Date      string           `json:"date" binding:"required"` // YYYY-MM-DD
	Marks     []AttendanceMark `json:"marks" binding:"required,min=1"`
}

// @Summary		List attendance
// @Description	Lists attendance records visible to the caller, optionally filtered by course and date
// @Tags			attendance
// @Produce		json
// @Security		BearerAuth
// @Param			course_id	query		int						false	"Filter by course"
// @Param			date		query		string					false	"Filter by date (YYYY-MM-DD)"
// @Success		200			{array}		models.AttendanceRecord	"Records"
// @Failure		500			{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/attendance [get]
func ListAttendance(c *gin.Context) {
	q := storage.DB.Preload("Course").Preload("Student").Limit(maxRows).Order("date DESC")
	if courseID := c.Query("course_id"); courseID != "" {
		q = q.Where("course_id = ?", courseID)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var records []models.AttendanceRecord
	if err := q.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load attendance",
		})
		return
	}

	c.JSON(http.StatusOK, access.Filter(callerScope(c), records))
}

// @Summary		Record attendance
// @Description	Records presence marks for a course session in one batch
// @Tags			attendance
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			attendance	body		AttendanceRequest			true	"Marks"
// @Success		201			{object}	response.SuccessResponse	"Recorded"
// @Failure		400			{object}	response.ErrorResponse		"VALIDATION_ERROR"
// @Router			/api/attendance [post]
func RecordAttendance(c *gin.Context) {
	var req AttendanceRequest
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

	records := make([]models.AttendanceRecord, 0, len(req.Marks))
	for _, m := range req.Marks {
		records = append(records, models.AttendanceRecord{
			CourseID:  req.CourseID,
			StudentID: m.StudentID,
			LectureID: req.LectureID,
			Date:      date,
			Present:   m.Present,
		})
	}

	if err := storage.DB.Create(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not record attendance",
		})
		return
	}

	ws.HubInstance.Notify("attendance_records", "insert", 0)
	c.JSON(http.StatusCreated, response.SuccessResponse{Message: "attendance recorded"})
}

// @Summary		Toggle attendance mark
// @Tags			attendance
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int						true	"Record id"
// @Success		200	{object}	models.AttendanceRecord	"Updated"
// @Failure		404	{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/attendance/{id}/toggle [post]
func ToggleAttendance(c *gin.Context) {
	var record models.AttendanceRecord
	if err := storage.DB.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "attendance record not found",
		})
		return
	}

	record.Present = !record.Present
	if err := storage.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update attendance",
		})
		return
	}

	ws.HubInstance.Notify("attendance_records", "update", record.ID)
	c.JSON(http.StatusOK, record)
}
