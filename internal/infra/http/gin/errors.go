package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
	mongostore "github.com/raburski/friends-place-sub000/internal/infra/db/mongo"
	memorystore "github.com/raburski/friends-place-sub000/internal/infra/storage/memory"
)

// statusFor maps domain errors onto HTTP statuses. Every error here is
// recoverable and caller-facing; anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainplace.ErrNotFound),
		errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainavailability.ErrNotFound),
		errors.Is(err, domainnotification.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainplace.ErrNotOwner),
		errors.Is(err, domainbooking.ErrNotParticipant),
		errors.Is(err, domainnotification.ErrNotRecipient):
		return http.StatusForbidden
	case errors.Is(err, domainbooking.ErrPlaceUnavailable),
		errors.Is(err, domainbooking.ErrGuestUnavailable),
		errors.Is(err, mongostore.ErrConcurrentUpdate),
		errors.Is(err, memorystore.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, domainrange.ErrInvalidRange),
		errors.Is(err, domainrange.ErrInvalidDates),
		errors.Is(err, domainavailability.ErrNoAvailability),
		errors.Is(err, domainavailability.ErrNoValidRanges),
		errors.Is(err, domainplace.ErrInactive),
		errors.Is(err, domainplace.ErrAlreadyInactive),
		errors.Is(err, domainplace.ErrCannotBookOwn),
		errors.Is(err, domainplace.ErrNameRequired),
		errors.Is(err, domainbooking.ErrInvalidStatus),
		errors.Is(err, domainbooking.ErrNotFinished),
		errors.Is(err, domainbooking.ErrUnknownStatus):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
