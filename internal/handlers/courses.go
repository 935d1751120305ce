package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unidash/internal/access"
	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

type CourseRequest struct {
	Code           string `json:"code" binding:"required"`
	Title          string `json:"title" binding:"required"`
	DepartmentCode string `json:"department_code" binding:"required"`
	LecturerID     uint   `json:"lecturer_id"`
	Credits        int    `json:"credits"`
	Semester       string `json:"semester"`
}

// @Summary		List courses
// @Description	Lists courses visible to the caller; lecturers only see their departments
// @Tags			courses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Course			"Courses"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/courses [get]
func ListCourses(c *gin.Context) {
	var courses []models.Course
	if err := storage.DB.Preload("Lecturer").Limit(maxRows).Order("code").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load courses",
		})
		return
	}

	c.JSON(http.StatusOK, access.Filter(callerScope(c), courses))
}

// @Summary		Create course
// @Tags			courses
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			course	body		CourseRequest			true	"Course"
// @Success		201		{object}	models.Course			"Created"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Router			/api/courses [post]
func CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	course := models.Course{
		Code:           req.Code,
		Title:          req.Title,
		DepartmentCode: req.DepartmentCode,
		LecturerID:     req.LecturerID,
		Credits:        req.Credits,
		Semester:       req.Semester,
	}
	if err := storage.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create course",
		})
		return
	}

	ws.HubInstance.Notify("courses", "insert", course.ID)
	c.JSON(http.StatusCreated, course)
}

// @Summary		Update course
// @Tags			courses
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		int						true	"Course id"
// @Param			course	body		CourseRequest			true	"Course"
// @Success		200		{object}	models.Course			"Updated"
// @Failure		404		{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/courses/{id} [put]
func UpdateCourse(c *gin.Context) {
	var course models.Course
	if err := storage.DB.First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "course not found",
		})
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	course.Code = req.Code
	course.Title = req.Title
	course.DepartmentCode = req.DepartmentCode
	course.LecturerID = req.LecturerID
	course.Credits = req.Credits
	course.Semester = req.Semester

	if err := storage.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update course",
		})
		return
	}

	ws.HubInstance.Notify("courses", "update", course.ID)
	c.JSON(http.StatusOK, course)
}

// @Summary		Delete course
// @Tags			courses
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Course id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/courses/{id} [delete]
func DeleteCourse(c *gin.Context) {
	var course models.Course
	if err := storage.DB.First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "course not found",
		})
		return
	}

	if err := storage.DB.Delete(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not delete course",
		})
		return
	}

	ws.HubInstance.Notify("courses", "delete", course.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "course deleted"})
}
