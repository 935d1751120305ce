package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unidash/internal/models"
	"unidash/internal/response"
	"unidash/internal/stats"
	"unidash/internal/storage"
)

// @Summary		Dashboard stats
// @Description	Entity counts for the dashboard; admins get the cached global snapshot, lecturers get counts scoped to their departments
// @Tags			stats
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	stats.Snapshot			"Counts"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/stats [get]
func GetStats(c *gin.Context) {
	if c.GetString("role") == models.RoleAdmin {
		if snap, ok := stats.Cached(ctx, storage.RedisClient); ok {
			c.JSON(http.StatusOK, snap)
			return
		}
		snap, err := stats.Compute(storage.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    response.CodeDB,
				Message: "could not compute stats",
			})
			return
		}
		stats.Store(ctx, storage.RedisClient, snap)
		c.JSON(http.StatusOK, snap)
		return
	}

	scope := callerScope(c)
	snap, err := stats.ComputeScoped(storage.DB, scope.Codes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    response.CodeDB,
			Message: "could not compute stats",
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}
