package postgres

import (
	"errors"

	"gorm.io/gorm"
)

/*
 * 'Friendship' represents a friendship between two users.
 */
type Friendship struct {
	Username1 string `gorm:"primaryKey;type:varchar(50);index:idx_friendships_username2"`
	Username2 string `gorm:"primaryKey;type:varchar(50)"`

	// Relationships
	User1 PlayerProfile `gorm:"foreignKey:Username1;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User2 PlayerProfile `gorm:"foreignKey:Username2;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// GORM hook to ensure that both usernames are different
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.Username1 == f.Username2 {
		return errors.New("cannot create a friendship with yourself")
	}
	return nil
}
