package handler

import (
	"errors"
	"net/http"

	"github.com/RohitYadav0014/AccelQuote/internal/repository"
	"github.com/RohitYadav0014/AccelQuote/internal/service"

	"github.com/gin-gonic/gin"
)

// statusForError maps workflow errors to HTTP statuses: upstream backend
// failures surface as 502, workflow precondition and concurrency failures
// as 409.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUpstream), errors.Is(err, service.ErrEmptyUpstream):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNotExtracted),
		errors.Is(err, service.ErrEmptyCatalog),
		errors.Is(err, service.ErrNoPriceData),
		errors.Is(err, service.ErrNoDiscountData),
		errors.Is(err, repository.ErrLedgerConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRole):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// currentUser pulls the authenticated user id and role the auth middleware
// stored on the context.
func currentUser(c *gin.Context) (userID, role string) {
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("userRole"); ok {
		role, _ = v.(string)
	}
	return userID, role
}
