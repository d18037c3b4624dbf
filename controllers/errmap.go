package controllers

import (
	"errors"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// serviceError maps the sentinel errors the services return onto HTTP codes.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrItemNotPending),
		errors.Is(err, services.ErrOrderNotMutable),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrMenuItemMissing),
		errors.Is(err, services.ErrNotCompleted),
		errors.Is(err, services.ErrEmptyGroup):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
