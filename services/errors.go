package services

import "errors"

// business-rule errors ที่ controller map เป็น 400/404/409
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("order changed by someone else, refresh and retry")
	ErrItemNotPending    = errors.New("item can only be removed while pending")
	ErrOrderNotMutable   = errors.New("order can no longer be modified")
	ErrReasonRequired    = errors.New("a reason is required")
	ErrTableOccupied     = errors.New("table is already occupied")
	ErrMenuItemMissing   = errors.New("menu item not found or unavailable")
	ErrNotCompleted      = errors.New("order is not completed")
	ErrEmptyGroup        = errors.New("split groups must not be empty")
)
