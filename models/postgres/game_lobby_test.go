package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRankOrdersTheLifecycle(t *testing.T) {
	assert.Less(t, StatusRank(LobbyStatusWaiting), StatusRank(LobbyStatusPlaying))
	assert.Less(t, StatusRank(LobbyStatusPlaying), StatusRank(LobbyStatusFinished))
	assert.Equal(t, -1, StatusRank("cancelled"))
}

func TestGenerateLobbyID(t *testing.T) {
	id := generateLobbyID(4)
	assert.Len(t, id, 4)
	for _, c := range id {
		assert.Contains(t, charset, string(c))
	}
}
