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

type StudentRequest struct {
	MatricNo       string `json:"matric_no" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Surname        string `json:"surname" binding:"required"`
	Email          string `json:"email"`
	DepartmentCode string `json:"department_code" binding:"required"`
	Level          string `json:"level"`
	Phone          string `json:"phone"`
}

// @Summary		List students
// @Description	Lists students visible to the caller; lecturers only see their departments. Supports substring search on name and matric number.
// @Tags			students
// @Produce		json
// @Security		BearerAuth
// @Param			search	query		string					false	"Substring match on name/matric number"
// @Success		200		{array}		models.Student			"Students"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/students [get]
func ListStudents(c *gin.Context) {
	q := storage.DB.Limit(maxRows).Order("surname, name")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR surname ILIKE ? OR matric_no ILIKE ?", like, like, like)
	}

	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load students",
		})
		return
	}

	c.JSON(http.StatusOK, access.Filter(callerScope(c), students))
}

// @Summary		Create student
// @Tags			students
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			student	body		StudentRequest			true	"Student"
// @Success		201		{object}	models.Student			"Created"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/students [post]
func CreateStudent(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	student := models.Student{
		MatricNo:       req.MatricNo,
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		DepartmentCode: req.DepartmentCode,
		Level:          req.Level,
		Phone:          req.Phone,
	}
	if err := storage.DB.Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create student",
		})
		return
	}

	ws.HubInstance.Notify("students", "insert", student.ID)
	c.JSON(http.StatusCreated, student)
}

// @Summary		Update student
// @Tags			students
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		int						true	"Student id"
// @Param			student	body		StudentRequest			true	"Student"
// @Success		200		{object}	models.Student			"Updated"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		404		{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/students/{id} [put]
func UpdateStudent(c *gin.Context) {
	var student models.Student
	if err := storage.DB.First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "student not found",
		})
		return
	}

	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	student.MatricNo = req.MatricNo
	student.Name = req.Name
	student.Surname = req.Surname
	student.Email = req.Email
	student.DepartmentCode = req.DepartmentCode
	student.Level = req.Level
	student.Phone = req.Phone

	if err := storage.DB.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update student",
		})
		return
	}

	ws.HubInstance.Notify("students", "update", student.ID)
	c.JSON(http.StatusOK, student)
}

// @Summary		Delete student
// @Tags			students
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Student id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/students/{id} [delete]
func DeleteStudent(c *gin.Context) {
	var student models.Student
	if err := storage.DB.First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "student not found",
		})
		return
	}

	if err := storage.DB.Delete(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not delete student",
		})
		return
	}

	ws.HubInstance.Notify("students", "delete", student.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "student deleted"})
}
