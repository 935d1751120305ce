package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

type DepartmentRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// @Summary		List departments
// @Tags			departments
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Department		"Departments"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/departments [get]
func ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := storage.DB.Order("code").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load departments",
		})
		return
	}
	c.JSON(http.StatusOK, departments)
}

// @Summary		Create department
// @Tags			departments
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			department	body		DepartmentRequest		true	"Department"
// @Success		201			{object}	models.Department		"Created"
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Router			/api/departments [post]
func CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	dept := models.Department{Code: req.Code, Name: req.Name}
	if err := storage.DB.Create(&dept).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create department",
		})
		return
	}

	ws.HubInstance.Notify("departments", "insert", dept.ID)
	c.JSON(http.StatusCreated, dept)
}

type AssignmentRequest struct {
	LecturerID     uint   `json:"lecturer_id" binding:"required"`
	DepartmentCode string `json:"department_code" binding:"required"`
}

// @Summary		List department assignments
// @Description	Lists lecturer-department assignments, active and inactive
// @Tags			departments
// @Produce		json
// @Security		BearerAuth
// @Param			lecturer_id	query		int								false	"Filter by lecturer"
// @Success		200			{array}		models.DepartmentAssignment		"Assignments"
// @Failure		500			{object}	response.ErrorResponse			"DB_ERROR"
// @Router			/api/departments/assignments [get]
func ListDepartmentAssignments(c *gin.Context) {
	q := storage.DB.Preload("Lecturer").Limit(maxRows).Order("department_code")
	if lecturerID := c.Query("lecturer_id"); lecturerID != "" {
		q = q.Where("lecturer_id = ?", lecturerID)
	}

	var assignments []models.DepartmentAssignment
	if err := q.Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load assignments",
		})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// @Summary		Assign lecturer to department
// @Description	Creates an active assignment and drops the lecturer's cached scope
// @Tags			departments
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			assignment	body		AssignmentRequest				true	"Assignment"
// @Success		201			{object}	models.DepartmentAssignment		"Created"
// @Failure		400			{object}	response.ErrorResponse			"VALIDATION_ERROR or UNKNOWN_DEPARTMENT"
// @Router			/api/departments/assignments [post]
func AssignLecturer(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	var dept models.Department
	if err := storage.DB.Where("code = ?", req.DepartmentCode).First(&dept).Error; err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "UNKNOWN_DEPARTMENT",
			Message: "department code does not exist",
		})
		return
	}

	assignment := models.DepartmentAssignment{
		LecturerID:     req.LecturerID,
		DepartmentCode: dept.Code,
		DepartmentName: dept.Name,
		Active:         true,
	}
	if err := storage.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create assignment",
		})
		return
	}

	invalidateScopeCache(req.LecturerID)
	ws.HubInstance.Notify("department_assignments", "insert", assignment.ID)
	c.JSON(http.StatusCreated, assignment)
}

// @Summary		Deactivate assignment
// @Description	Marks an assignment inactive; the lecturer loses access to the department
// @Tags			departments
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Assignment id"
// @Success		200	{object}	response.SuccessResponse	"Deactivated"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/departments/assignments/{id} [delete]
func DeactivateAssignment(c *gin.Context) {
	var assignment models.DepartmentAssignment
	if err := storage.DB.First(&assignment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "assignment not found",
		})
		return
	}

	assignment.Active = false
	if err := storage.DB.Save(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not deactivate assignment",
		})
		return
	}

	invalidateScopeCache(assignment.LecturerID)
	ws.HubInstance.Notify("department_assignments", "update", assignment.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "assignment deactivated"})
}
