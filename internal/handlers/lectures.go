package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"unidash/internal/access"
	"unidash/internal/lecture"
	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

var lectureService *lecture.Service

// InitLectureService wires the lifecycle engine; called once from main.
func InitLectureService(svc *lecture.Service) {
	lectureService = svc
}

type LectureRequest struct {
	CourseID    uint   `json:"course_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	MeetingLink string `json:"meeting_link"`
	LecturerID  uint   `json:"lecturer_id"` // admin only; defaults to the caller
}

type LectureUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	MeetingLink  *string `json:"meeting_link"`
	RecordingURL *string `json:"recording_url"`
	Date         *string `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
}

// LectureView decorates a lecture with its derived display status.
type LectureView struct {
	models.Lecture
	DerivedStatus string `json:"derived_status"`
}

func viewOf(l models.Lecture, now time.Time) LectureView {
	return LectureView{Lecture: l, DerivedStatus: lecture.DeriveStatus(l, now)}
}

// lectureError maps engine errors onto the API error envelope.
func lectureError(c *gin.Context, err error) {
	switch {
	case lecture.IsValidation(err):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: err.Error(),
		})
	case lecture.IsInvalidTransition(err):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    response.CodeInvalidTransition,
			Message: err.Error(),
		})
	case errors.Is(err, lecture.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "lecture not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "lecture operation failed",
		})
	}
}

// canManage reports whether the caller may mutate the lecture.
func canManage(c *gin.Context, l models.Lecture) bool {
	return c.GetString("role") == models.RoleAdmin || l.LecturerID == c.GetUint("userID")
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, response.ErrorResponse{
		Code:    response.CodeAuthorization,
		Message: "not your lecture",
	})
}

// @Summary		List lectures
// @Description	Lists lectures visible to the caller with derived display status
// @Tags			lectures
// @Produce		json
// @Security		BearerAuth
// @Param			course_id	query		int						false	"Filter by course"
// @Param			mine		query		bool					false	"Only the caller's own lectures"
// @Success		200			{array}		LectureView				"Lectures"
// @Failure		500			{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lectures [get]
func ListLectures(c *gin.Context) {
	lectures, err := queryLectures(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load lectures",
		})
		return
	}

	now := time.Now()
	views := make([]LectureView, 0, len(lectures))
	for _, l := range lectures {
		views = append(views, viewOf(l, now))
	}
	c.JSON(http.StatusOK, views)
}

// @Summary		Lecture buckets
// @Description	Partitions visible lectures into live, upcoming and past groups
// @Tags			lectures
// @Produce		json
// @Security		BearerAuth
// @Param			mine	query		bool					false	"Only the caller's own lectures"
// @Success		200		{object}	lecture.Buckets			"Buckets"
// @Failure		500		{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lectures/buckets [get]
func LectureBuckets(c *gin.Context) {
	lectures, err := queryLectures(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not load lectures",
		})
		return
	}

	c.JSON(http.StatusOK, lecture.Bucketize(lectures, time.Now()))
}

func queryLectures(c *gin.Context) ([]models.Lecture, error) {
	q := storage.DB.Preload("Course").Limit(maxRows).Order("date, start_time")
	if courseID := c.Query("course_id"); courseID != "" {
		q = q.Where("course_id = ?", courseID)
	}
	if c.Query("mine") == "true" {
		q = q.Where("lecturer_id = ?", c.GetUint("userID"))
	}

	var lectures []models.Lecture
	if err := q.Find(&lectures).Error; err != nil {
		return nil, err
	}
	return access.Filter(callerScope(c), lectures), nil
}

// @Summary		Schedule lecture
// @Description	Creates a scheduled lecture for one of the caller's courses
// @Tags			lectures
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			lecture	body		LectureRequest			true	"Lecture"
// @Success		201		{object}	LectureView				"Created"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		403		{object}	response.ErrorResponse	"AUTHORIZATION_ERROR"
// @Router			/api/lectures [post]
func CreateLecture(c *gin.Context) {
	var req LectureRequest
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

	var course models.Course
	if err := storage.DB.First(&course, req.CourseID).Error; err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "UNKNOWN_COURSE",
			Message: "course does not exist",
		})
		return
	}
	if !access.IsVisible(callerScope(c), course) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    response.CodeAuthorization,
			Message: "course is outside your departments",
		})
		return
	}

	lecturerID := c.GetUint("userID")
	if req.LecturerID != 0 && c.GetString("role") == models.RoleAdmin {
		lecturerID = req.LecturerID
	}

	l, err := lectureService.Create(c.Request.Context(), lecture.CreateInput{
		CourseID:    req.CourseID,
		LecturerID:  lecturerID,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		lectureError(c, err)
		return
	}

	ws.HubInstance.Notify("lectures", "insert", l.ID)
	c.JSON(http.StatusCreated, viewOf(l, time.Now()))
}

// @Summary		Start lecture
// @Description	Moves a scheduled lecture to ongoing
// @Tags			lectures
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int						true	"Lecture id"
// @Success		200	{object}	LectureView				"Started"
// @Failure		403	{object}	response.ErrorResponse	"AUTHORIZATION_ERROR"
// @Failure		409	{object}	response.ErrorResponse	"INVALID_TRANSITION"
// @Router			/api/lectures/{id}/start [post]
func StartLecture(c *gin.Context) {
	l, ok := loadOwnedLecture(c)
	if !ok {
		return
	}

	started, err := lectureService.Start(c.Request.Context(), l.ID)
	if err != nil {
		lectureError(c, err)
		return
	}

	ws.HubInstance.Notify("lectures", "update", started.ID)
	c.JSON(http.StatusOK, viewOf(started, time.Now()))
}

// @Summary		End lecture
// @Description	Moves an ongoing lecture to completed; never inferred automatically
// @Tags			lectures
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int						true	"Lecture id"
// @Success		200	{object}	LectureView				"Ended"
// @Failure		403	{object}	response.ErrorResponse	"AUTHORIZATION_ERROR"
// @Failure		409	{object}	response.ErrorResponse	"INVALID_TRANSITION"
// @Router			/api/lectures/{id}/end [post]
func EndLecture(c *gin.Context) {
	l, ok := loadOwnedLecture(c)
	if !ok {
		return
	}

	ended, err := lectureService.End(c.Request.Context(), l.ID)
	if err != nil {
		lectureError(c, err)
		return
	}

	ws.HubInstance.Notify("lectures", "update", ended.ID)
	c.JSON(http.StatusOK, viewOf(ended, time.Now()))
}

// @Summary		Edit lecture
// @Description	Updates lecture fields; the stored status is never touched
// @Tags			lectures
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		int						true	"Lecture id"
// @Param			fields	body		LectureUpdateRequest	true	"Fields to change"
// @Success		200		{object}	LectureView				"Updated"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		403		{object}	response.ErrorResponse	"AUTHORIZATION_ERROR"
// @Router			/api/lectures/{id} [put]
func UpdateLecture(c *gin.Context) {
	l, ok := loadOwnedLecture(c)
	if !ok {
		return
	}

	var req LectureUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    response.CodeValidation,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	in := lecture.EditInput{
		Title:        req.Title,
		Description:  req.Description,
		MeetingLink:  req.MeetingLink,
		RecordingURL: req.RecordingURL,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if req.Date != nil {
		date, err := time.ParseInLocation(dateLayout, *req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    response.CodeValidation,
				Message: "date must be YYYY-MM-DD",
			})
			return
		}
		in.Date = &date
	}

	updated, err := lectureService.Edit(c.Request.Context(), l.ID, in)
	if err != nil {
		lectureError(c, err)
		return
	}

	ws.HubInstance.Notify("lectures", "update", updated.ID)
	c.JSON(http.StatusOK, viewOf(updated, time.Now()))
}

// @Summary		Delete lecture
// @Description	Removes a lecture; the UI asks for confirmation before calling this
// @Tags			lectures
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"Lecture id"
// @Success		200	{object}	response.SuccessResponse	"Deleted"
// @Failure		403	{object}	response.ErrorResponse		"AUTHORIZATION_ERROR"
// @Failure		404	{object}	response.ErrorResponse		"NOT_FOUND"
// @Router			/api/lectures/{id} [delete]
func DeleteLecture(c *gin.Context) {
	l, ok := loadOwnedLecture(c)
	if !ok {
		return
	}

	if err := lectureService.Delete(c.Request.Context(), l.ID); err != nil {
		lectureError(c, err)
		return
	}

	ws.HubInstance.Notify("lectures", "delete", l.ID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "lecture deleted"})
}

// loadOwnedLecture fetches the path lecture and enforces ownership. On
// failure the response is already written.
func loadOwnedLecture(c *gin.Context) (models.Lecture, bool) {
	var l models.Lecture
	if err := storage.DB.First(&l, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    response.CodeNotFound,
			Message: "lecture not found",
		})
		return models.Lecture{}, false
	}
	if !canManage(c, l) {
		forbidden(c)
		return models.Lecture{}, false
	}
	return l, true
}
