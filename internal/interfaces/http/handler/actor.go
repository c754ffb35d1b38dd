package handler

import (
	"github.com/gin-gonic/gin"

	bulkapp "github.com/morabaat/backend/internal/application/bulk"
	directoryapp "github.com/morabaat/backend/internal/application/directory"
	notificationapp "github.com/morabaat/backend/internal/application/notification"
	reviewapp "github.com/morabaat/backend/internal/application/review"
	"github.com/morabaat/backend/internal/infrastructure/auth"
	"github.com/morabaat/backend/internal/interfaces/http/middleware"
)

// Each application package carries its own Actor shape; these helpers
// project the authenticated request onto them.

func directoryActor(c *gin.Context) directoryapp.Actor {
	return directoryapp.Actor{
		UserID: middleware.CurrentUserID(c),
		Role:   middleware.CurrentRole(c),
	}
}

func reviewActor(c *gin.Context) reviewapp.Actor {
	return reviewapp.Actor{
		UserID: middleware.CurrentUserID(c),
		Role:   middleware.CurrentRole(c),
	}
}

func notificationActor(c *gin.Context) notificationapp.Actor {
	return notificationapp.Actor{
		UserID: middleware.CurrentUserID(c),
		Role:   middleware.CurrentRole(c),
	}
}

func bulkActor(c *gin.Context) bulkapp.Actor {
	return bulkapp.Actor{
		UserID: middleware.CurrentUserID(c),
		Role:   middleware.CurrentRole(c),
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(middleware.ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
