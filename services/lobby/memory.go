package lobby

import (
	"fmt"
	"sort"
	"sync"
	"time"

	models "Pairly/models/postgres"
)

// MemoryRepository is an in-process Repository for tests. Atomically takes a
// snapshot before running fn and restores it when fn fails, so the
// all-or-nothing behaviour of the Postgres transactions is preserved.
type MemoryRepository struct {
	mu           sync.Mutex
	lobbies      map[string]*models.GameLobby
	participants map[string]map[string]*models.LobbyParticipant
	invitations  map[string]map[string]*models.LobbyInvitation
	profiles     map[string]models.PlayerProfile
	nextID       int
	clock        time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lobbies:      make(map[string]*models.GameLobby),
		participants: make(map[string]map[string]*models.LobbyParticipant),
		invitations:  make(map[string]map[string]*models.LobbyInvitation),
		profiles:     make(map[string]models.PlayerProfile),
		clock:        time.Now(),
	}
}

// AddProfile registers a user so joins can attach a profile, the way the
// Postgres preload does.
func (r *MemoryRepository) AddProfile(profile models.PlayerProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.Username] = profile
}

// tick hands out strictly increasing timestamps so ordering by JoinedAt and
// CreatedAt is deterministic.
func (r *MemoryRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *MemoryRepository) Atomically(fn func(Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.snapshot()
	if err := fn(&memoryTx{repo: r}); err != nil {
		r.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	lobbies      map[string]*models.GameLobby
	participants map[string]map[string]*models.LobbyParticipant
	invitations  map[string]map[string]*models.LobbyInvitation
}

func (r *MemoryRepository) snapshot() memorySnapshot {
	s := memorySnapshot{
		lobbies:      make(map[string]*models.GameLobby, len(r.lobbies)),
		participants: make(map[string]map[string]*models.LobbyParticipant, len(r.participants)),
		invitations:  make(map[string]map[string]*models.LobbyInvitation, len(r.invitations)),
	}
	for id, lobby := range r.lobbies {
		copied := *lobby
		s.lobbies[id] = &copied
	}
	for id, members := range r.participants {
		inner := make(map[string]*models.LobbyParticipant, len(members))
		for username, p := range members {
			copied := *p
			inner[username] = &copied
		}
		s.participants[id] = inner
	}
	for id, invitations := range r.invitations {
		inner := make(map[string]*models.LobbyInvitation, len(invitations))
		for invitee, inv := range invitations {
			copied := *inv
			inner[invitee] = &copied
		}
		s.invitations[id] = inner
	}
	return s
}

func (r *MemoryRepository) restore(s memorySnapshot) {
	r.lobbies = s.lobbies
	r.participants = s.participants
	r.invitations = s.invitations
}

func (r *MemoryRepository) LobbyWithParticipants(lobbyID string) (*models.GameLobby, []models.LobbyParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby, ok := r.lobbies[lobbyID]
	if !ok {
		return nil, nil, ErrLobbyNotFound
	}
	copied := *lobby

	var participants []models.LobbyParticipant
	for _, p := range r.participants[lobbyID] {
		member := *p
		member.PlayerProfile = r.profiles[p.Username]
		participants = append(participants, member)
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})
	return &copied, participants, nil
}

func (r *MemoryRepository) SetReady(lobbyID, username string, ready bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[lobbyID][username]
	if !ok {
		return false, nil
	}
	p.IsReady = ready
	return true, nil
}

func (r *MemoryRepository) PendingInvitationsFor(username string) ([]models.LobbyInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []models.LobbyInvitation
	for lobbyID, invitations := range r.invitations {
		inv, ok := invitations[username]
		if !ok || inv.Status != models.InvitationPending {
			continue
		}
		copied := *inv
		if lobby, ok := r.lobbies[lobbyID]; ok {
			copied.GameLobby = *lobby
		}
		copied.SenderProfile = r.profiles[inv.SenderUsername]
		pending = append(pending, copied)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}

// memoryTx runs with the repository mutex already held by Atomically.
type memoryTx struct {
	repo *MemoryRepository
}

func (t *memoryTx) LobbyForUpdate(lobbyID string) (*models.GameLobby, error) {
	lobby, ok := t.repo.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	copied := *lobby
	return &copied, nil
}

func (t *memoryTx) IsMember(lobbyID, username string) (bool, error) {
	_, ok := t.repo.participants[lobbyID][username]
	return ok, nil
}

func (t *memoryTx) CreateLobby(lobby *models.GameLobby) error {
	if lobby.ID == "" {
		t.repo.nextID++
		lobby.ID = fmt.Sprintf("L%03d", t.repo.nextID)
	}
	if lobby.CreatedAt.IsZero() {
		lobby.CreatedAt = t.repo.tick()
	}
	copied := *lobby
	t.repo.lobbies[lobby.ID] = &copied
	return nil
}

func (t *memoryTx) AddParticipant(p *models.LobbyParticipant) error {
	if p.JoinedAt.IsZero() {
		p.JoinedAt = t.repo.tick()
	}
	members, ok := t.repo.participants[p.LobbyID]
	if !ok {
		members = make(map[string]*models.LobbyParticipant)
		t.repo.participants[p.LobbyID] = members
	}
	copied := *p
	members[p.Username] = &copied
	return nil
}

func (t *memoryTx) RemoveParticipant(lobbyID, username string) error {
	delete(t.repo.participants[lobbyID], username)
	return nil
}

func (t *memoryTx) AdjustPlayerCount(lobbyID string, delta int) error {
	if lobby, ok := t.repo.lobbies[lobbyID]; ok {
		lobby.CurrentPlayers += delta
	}
	return nil
}

func (t *memoryTx) DeleteLobby(lobbyID string) error {
	delete(t.repo.lobbies, lobbyID)
	delete(t.repo.participants, lobbyID)
	delete(t.repo.invitations, lobbyID)
	return nil
}

func (t *memoryTx) SetStatus(lobbyID, status string) error {
	if lobby, ok := t.repo.lobbies[lobbyID]; ok {
		lobby.Status = status
	}
	return nil
}

func (t *memoryTx) Invitation(lobbyID, invitee string) (*models.LobbyInvitation, error) {
	inv, ok := t.repo.invitations[lobbyID][invitee]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (t *memoryTx) CreateInvitation(invitation *models.LobbyInvitation) error {
	if invitation.Status == "" {
		invitation.Status = models.InvitationPending
	}
	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = t.repo.tick()
	}
	invitations, ok := t.repo.invitations[invitation.LobbyID]
	if !ok {
		invitations = make(map[string]*models.LobbyInvitation)
		t.repo.invitations[invitation.LobbyID] = invitations
	}
	copied := *invitation
	invitations[invitation.InvitedUsername] = &copied
	return nil
}

func (t *memoryTx) DeleteInvitation(lobbyID, invitee string) error {
	delete(t.repo.invitations[lobbyID], invitee)
	return nil
}

func (t *memoryTx) SetInvitationStatus(lobbyID, invitee, status string) error {
	if inv, ok := t.repo.invitations[lobbyID][invitee]; ok {
		inv.Status = status
	}
	return nil
}
