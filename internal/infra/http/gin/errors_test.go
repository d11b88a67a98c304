package ginserver

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
	memorystore "github.com/raburski/friends-place-sub000/internal/infra/storage/memory"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainplace.ErrNotFound, http.StatusNotFound},
		{domainbooking.ErrNotFound, http.StatusNotFound},
		{domainplace.ErrNotOwner, http.StatusForbidden},
		{domainbooking.ErrNotParticipant, http.StatusForbidden},
		{domainbooking.ErrPlaceUnavailable, http.StatusConflict},
		{domainbooking.ErrGuestUnavailable, http.StatusConflict},
		{memorystore.ErrConcurrentUpdate, http.StatusConflict},
		{domainrange.ErrInvalidRange, http.StatusUnprocessableEntity},
		{domainavailability.ErrNoAvailability, http.StatusUnprocessableEntity},
		{domainplace.ErrInactive, http.StatusUnprocessableEntity},
		{domainplace.ErrCannotBookOwn, http.StatusUnprocessableEntity},
		{domainbooking.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{domainbooking.ErrNotFinished, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
