package lobby

import (
	models "Pairly/models/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository abstracts the lobby tables behind the lifecycle rules, so the
// rules can be exercised against an in-process implementation in tests.
type Repository interface {
	// Atomically runs fn as one transaction: either every write in fn lands
	// or none does.
	Atomically(fn func(Tx) error) error
	LobbyWithParticipants(lobbyID string) (*models.GameLobby, []models.LobbyParticipant, error)
	// SetReady flips the participant's ready flag; false when no such
	// participant row exists.
	SetReady(lobbyID, username string, ready bool) (bool, error)
	PendingInvitationsFor(username string) ([]models.LobbyInvitation, error)
}

// Tx is the Repository surface available inside one atomic block.
type Tx interface {
	// LobbyForUpdate loads the lobby row under a row lock. Concurrent
	// transactions on the same lobby serialize here, so the capacity and
	// status checks that follow always see the latest committed count.
	LobbyForUpdate(lobbyID string) (*models.GameLobby, error)
	IsMember(lobbyID, username string) (bool, error)
	CreateLobby(lobby *models.GameLobby) error
	AddParticipant(p *models.LobbyParticipant) error
	RemoveParticipant(lobbyID, username string) error
	AdjustPlayerCount(lobbyID string, delta int) error
	// DeleteLobby removes the lobby; participants, invitations and the
	// game-state document go with it.
	DeleteLobby(lobbyID string) error
	SetStatus(lobbyID, status string) error
	// Invitation returns nil without error when no row exists.
	Invitation(lobbyID, invitee string) (*models.LobbyInvitation, error)
	CreateInvitation(invitation *models.LobbyInvitation) error
	DeleteInvitation(lobbyID, invitee string) error
	SetInvitationStatus(lobbyID, invitee, status string) error
}

// GormRepository is the Postgres-backed Repository.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) Atomically(fn func(Tx) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

func (r *GormRepository) LobbyWithParticipants(lobbyID string) (*models.GameLobby, []models.LobbyParticipant, error) {
	var lobby models.GameLobby
	if err := r.DB.Where("id = ?", lobbyID).First(&lobby).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrLobbyNotFound
		}
		return nil, nil, err
	}

	var participants []models.LobbyParticipant
	if err := r.DB.Preload("PlayerProfile").
		Where("lobby_id = ?", lobbyID).
		Order("joined_at").
		Find(&participants).Error; err != nil {
		return nil, nil, err
	}
	return &lobby, participants, nil
}

func (r *GormRepository) SetReady(lobbyID, username string, ready bool) (bool, error) {
	result := r.DB.Model(&models.LobbyParticipant{}).
		Where("lobby_id = ? AND username = ?", lobbyID, username).
		Update("is_ready", ready)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormRepository) PendingInvitationsFor(username string) ([]models.LobbyInvitation, error) {
	var invitations []models.LobbyInvitation
	err := r.DB.Preload("GameLobby").Preload("SenderProfile").
		Where("invited_username = ? AND status = ?", username, models.InvitationPending).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) LobbyForUpdate(lobbyID string) (*models.GameLobby, error) {
	var lobby models.GameLobby
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", lobbyID).First(&lobby).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrLobbyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (t *gormTx) IsMember(lobbyID, username string) (bool, error) {
	var count int64
	err := t.tx.Model(&models.LobbyParticipant{}).
		Where("lobby_id = ? AND username = ?", lobbyID, username).
		Count(&count).Error
	return count > 0, err
}

func (t *gormTx) CreateLobby(lobby *models.GameLobby) error {
	return t.tx.Create(lobby).Error
}

func (t *gormTx) AddParticipant(p *models.LobbyParticipant) error {
	return t.tx.Create(p).Error
}

func (t *gormTx) RemoveParticipant(lobbyID, username string) error {
	return t.tx.Where("lobby_id = ? AND username = ?", lobbyID, username).
		Delete(&models.LobbyParticipant{}).Error
}

func (t *gormTx) AdjustPlayerCount(lobbyID string, delta int) error {
	return t.tx.Model(&models.GameLobby{}).Where("id = ?", lobbyID).
		Update("current_players", gorm.Expr("current_players + ?", delta)).Error
}

// Participants, invitations and the state document are removed by the FK
// cascades declared on the models.
func (t *gormTx) DeleteLobby(lobbyID string) error {
	return t.tx.Delete(&models.GameLobby{}, "id = ?", lobbyID).Error
}

func (t *gormTx) SetStatus(lobbyID, status string) error {
	return t.tx.Model(&models.GameLobby{}).Where("id = ?", lobbyID).
		Update("status", status).Error
}

func (t *gormTx) Invitation(lobbyID, invitee string) (*models.LobbyInvitation, error) {
	var invitation models.LobbyInvitation
	err := t.tx.Where("lobby_id = ? AND invited_username = ?", lobbyID, invitee).
		First(&invitation).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (t *gormTx) CreateInvitation(invitation *models.LobbyInvitation) error {
	return t.tx.Create(invitation).Error
}

func (t *gormTx) DeleteInvitation(lobbyID, invitee string) error {
	return t.tx.Where("lobby_id = ? AND invited_username = ?", lobbyID, invitee).
		Delete(&models.LobbyInvitation{}).Error
}

func (t *gormTx) SetInvitationStatus(lobbyID, invitee, status string) error {
	return t.tx.Model(&models.LobbyInvitation{}).
		Where("lobby_id = ? AND invited_username = ?", lobbyID, invitee).
		Update("status", status).Error
}
