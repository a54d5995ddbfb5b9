package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

// SyncIdentity upserts the user row for authenticated requests so role
// lookups and admin listings see every subject the proxy has sent through.
// Best effort; a failed upsert never blocks the request.
func SyncIdentity(repo repository.Repository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, email, name := identity(c)
		if id != "" {
			user := models.User{
				ID:       id,
				Email:    email,
				Username: name,
				Role:     models.RoleFree,
			}
			if err := repo.UpsertUser(c.Request.Context(), &user); err != nil && logger != nil {
				logger.Warn("identity sync failed", zap.String("user_id", id), zap.Error(err))
			}
		}
		c.Next()
	}
}
