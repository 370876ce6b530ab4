package sync

import (
	models "Pairly/models/postgres"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the full shared game-state record of one lobby. GameData is
// opaque at this layer: each game rule module defines its own payload shape.
// A nil GameData means no game has been set up yet (or "play again" reset it).
type Document struct {
	LobbyID     string
	GameData    json.RawMessage
	CurrentTurn *string
	UpdatedAt   time.Time
}

// Store persists one document per lobby. Save always replaces the whole row,
// never patches, so a reader that skipped intermediate writes can catch up
// from any single Load.
type Store interface {
	// Load returns the latest document, or nil if none exists for the lobby.
	Load(lobbyID string) (*Document, error)
	Save(doc *Document) error
	Clear(lobbyID string) error
	// LobbyStatus returns the lobby's lifecycle status (waiting/playing/finished).
	LobbyStatus(lobbyID string) (string, error)
}

// GormStore keeps documents in the game_states table
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Load(lobbyID string) (*Document, error) {
	var state models.GameState
	err := s.DB.Where("lobby_id = ?", lobbyID).First(&state).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Document{
		LobbyID:     state.LobbyID,
		GameData:    json.RawMessage(state.GameData),
		CurrentTurn: state.CurrentTurnUsername,
		UpdatedAt:   state.UpdatedAt,
	}, nil
}

func (s *GormStore) Save(doc *Document) error {
	state := models.GameState{
		LobbyID:             doc.LobbyID,
		GameData:            []byte(doc.GameData),
		CurrentTurnUsername: doc.CurrentTurn,
		UpdatedAt:           time.Now(),
	}
	// Single upsert keyed by lobby id: game_data and current_turn_username
	// are replaced together, atomically
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lobby_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"game_data", "current_turn_username", "updated_at"}),
	}).Create(&state).Error
}

func (s *GormStore) Clear(lobbyID string) error {
	return s.DB.Where("lobby_id = ?", lobbyID).Delete(&models.GameState{}).Error
}

func (s *GormStore) LobbyStatus(lobbyID string) (string, error) {
	var lobby models.GameLobby
	err := s.DB.Select("status").Where("id = ?", lobbyID).First(&lobby).Error
	if err == gorm.ErrRecordNotFound {
		return "", ErrLobbyGone
	}
	if err != nil {
		return "", err
	}
	return lobby.Status, nil
}

// MemoryStore is an in-process Store used by tests and by the end-to-end
// simulation of two clients converging on one document.
type MemoryStore struct {
	mu       sync.Mutex
	docs     map[string]*Document
	statuses map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string]*Document),
		statuses: make(map[string]string),
	}
}

func (s *MemoryStore) Load(lobbyID string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[lobbyID]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.GameData = append(json.RawMessage(nil), doc.GameData...)
	return &cp, nil
}

func (s *MemoryStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *doc
	cp.GameData = append(json.RawMessage(nil), doc.GameData...)
	cp.UpdatedAt = time.Now()
	s.docs[doc.LobbyID] = &cp
	return nil
}

func (s *MemoryStore) Clear(lobbyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, lobbyID)
	return nil
}

func (s *MemoryStore) SetLobbyStatus(lobbyID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[lobbyID] = status
}

func (s *MemoryStore) LobbyStatus(lobbyID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.statuses[lobbyID]
	if !ok {
		return "", ErrLobbyGone
	}
	return status, nil
}
