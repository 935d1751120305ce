package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"unidash/internal/access"
	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

type FinancialRecordRequest struct {
	StudentID   uint   `json:"student_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
}

// @Summary		List financial records
// @Description	Lists records visible to the caller; lecturers only see their departments
// @Tags			finance
// @Produce		json
// @Security		BearerAuth
// @Param			status	query		string					false	"Filter by status (pending, paid, waived)"
// @Success		200		{array}		models.FinancialRecord	"Records"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/finance [get]
func ListFinancialRecords(c *gin.Context) {
	q := storage.DB.Preload("Student").Limit(maxRows).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var records []models.FinancialRecord
	if err := q.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load financial records",
		})
		return
	}

	c.JSON(http.StatusOK, access.Filter(callerScope(c), records))
}

// @Summary		Create financial record
// @Description	Creates a pending charge for a student; the receipt number is generated server-side
// @Tags			finance
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			record	body		FinancialRecordRequest	true	"Record"
// @Success		201		{object}	models.FinancialRecord	"Created"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR or UNKNOWN_STUDENT"
// @Router			/api/finance [post]
func CreateFinancialRecord(c *gin.Context) {
	var req FinancialRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	var student models.Student
	if err := storage.DB.First(&student, req.StudentID).Error; err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "UNKNOWN_STUDENT",
			Message: "student does not exist",
		})
		return
	}

	record := models.FinancialRecord{
		StudentID:      req.StudentID,
		DepartmentCode: student.DepartmentCode,
		Description:    req.Description,
		Amount:         req.Amount,
		Status:         "pending",
		ReceiptNo:      uuid.NewString(),
	}
	if err := storage.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not create financial record",
		})
		return
	}

	ws.HubInstance.Notify("financial_records", "insert", record.ID)
	c.JSON(http.StatusCreated, record)
}

// @Summary		Mark record paid
// @Tags			finance
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int						true	"Record id"
// @Success		200	{object}	models.FinancialRecord	"Updated"
// @Failure		404	{object}	response.ErrorResponse	"NOT_FOUND"
// @Router			/api/finance/{id}/pay [post]
func MarkRecordPaid(c *gin.Context) {
	var record models.FinancialRecord
	if err := storage.DB.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "financial record not found",
		})
		return
	}

	now := time.Now()
	record.Status = "paid"
	record.PaidAt = &now
	if err := storage.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not update financial record",
		})
		return
	}

	ws.HubInstance.Notify("financial_records", "update", record.ID)
	c.JSON(http.StatusOK, record)
}

// @Summary		Delete financial record
// @Tags			finance
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Record id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/finance/{id} [delete]
func DeleteFinancialRecord(c *gin.Context) {
	var record models.FinancialRecord
	if err := storage.DB.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "financial record not found",
		})
		return
	}

	if err := storage.DB.Delete(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not delete financial record",
		})
		return
	}

	ws.HubInstance.Notify("financial_records", "delete", record.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "financial record deleted"})
}
