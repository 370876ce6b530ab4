package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'PlayerProfile' defines the structure for a user's public profile. It is
 * referenced in User, Friendship, FriendshipRequest, GameLobby,
 * LobbyParticipant, LobbyInvitation and TimelinePhoto
 */
type PlayerProfile struct {
	Username    string         `gorm:"primaryKey;size:50;not null"`
	DisplayName string         `gorm:"size:100"`
	UserIcon    int            `gorm:"default:0"`
	UserStats   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Friendships1      []Friendship        `gorm:"foreignKey:Username1"`
	Friendships2      []Friendship        `gorm:"foreignKey:Username2"`
	FriendRequests    []FriendshipRequest `gorm:"foreignKey:Recipient"`
	HostedLobbies     []GameLobby         `gorm:"foreignKey:HostUsername"`
	LobbyParticipants []LobbyParticipant  `gorm:"foreignKey:Username"`
	LobbyInvitations  []LobbyInvitation   `gorm:"foreignKey:InvitedUsername"`
}
