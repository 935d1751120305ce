package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"unidash/internal/access"
	"unidash/internal/models"
	"unidash/internal/storage"
)

var ctx = context.Background()

// maxRows caps every list endpoint; the dashboard renders fixed-size tables.
const maxRows = 200

const scopeCacheTTL = 12 * time.Hour

func scopeCacheKey(userID uint) string {
	return fmt.Sprintf("scope:%d", userID)
}

// callerScope resolves the access scope of the authenticated caller.
// Lecturer department codes are cached in Redis so a page reload does not
// re-query assignments; the cache is dropped on sign-out and whenever an
// assignment changes.
func callerScope(c *gin.Context) access.Scope {
	role := c.GetString("role")
	if role == models.RoleAdmin {
		return access.AdminScope
	}

	userID := c.GetUint("userID")
	key := scopeCacheKey(userID)

	if cached, err := storage.RedisClient.Get(ctx, key).Result(); err == nil && cached != "" {
		var codes []string
		if err := json.Unmarshal([]byte(cached), &codes); err == nil {
			return access.Scope{Role: models.RoleLecturer, Codes: codes}
		}
	}

	var assignments []models.DepartmentAssignment
	storage.DB.Where("lecturer_id = ? AND active = ?", userID, true).Find(&assignments)
	scope := access.LecturerScope(assignments)

	if payload, err := json.Marshal(scope.Codes); err == nil {
		storage.RedisClient.Set(ctx, key, string(payload), scopeCacheTTL)
	}
	return scope
}

// invalidateScopeCache drops a lecturer's cached department codes.
func invalidateScopeCache(userID uint) {
	storage.RedisClient.Del(ctx, scopeCacheKey(userID))
}
