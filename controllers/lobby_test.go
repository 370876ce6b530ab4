package controllers

import (
	lobby_service "Pairly/services/lobby"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForLobbyError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{lobby_service.ErrLobbyNotFound, http.StatusNotFound},
		{lobby_service.ErrInvitationNotFound, http.StatusNotFound},
		{lobby_service.ErrNotHost, http.StatusForbidden},
		{lobby_service.ErrLobbyNotWaiting, http.StatusConflict},
		{lobby_service.ErrLobbyFull, http.StatusConflict},
		{lobby_service.ErrAlreadyMember, http.StatusConflict},
		{lobby_service.ErrNotMember, http.StatusConflict},
		{lobby_service.ErrDuplicateInvitation, http.StatusConflict},
		{lobby_service.ErrInvitationNotPending, http.StatusConflict},
		{lobby_service.ErrStatusBackward, http.StatusConflict},
		{lobby_service.ErrBadGameType, http.StatusBadRequest},
		{lobby_service.ErrBadStatus, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusForLobbyError(tc.err), "mapping for %v", tc.err)
	}
}
