package socketio_types

import (
	state_sync "Pairly/services/sync"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track username -> socket connections
	UserConnections map[string]*socket.Socket
	// Map to track username -> active sync engine (one open lobby per user)
	Engines map[string]*state_sync.Engine
	mutex   sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		Engines:         make(map[string]*state_sync.Engine),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(username string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[username] = socket
}

func (s *SocketServer) RemoveConnection(username string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, username)
}

func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[username]
	return socket, exists
}

// SetEngine replaces the user's active engine, closing any previous one.
func (s *SocketServer) SetEngine(username string, engine *state_sync.Engine) {
	s.mutex.Lock()
	previous := s.Engines[username]
	s.Engines[username] = engine
	s.mutex.Unlock()
	if previous != nil {
		previous.Close()
	}
}

func (s *SocketServer) GetEngine(username string) (*state_sync.Engine, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	engine, exists := s.Engines[username]
	return engine, exists
}

// RemoveEngine tears down and forgets the user's active engine.
func (s *SocketServer) RemoveEngine(username string) {
	s.mutex.Lock()
	engine := s.Engines[username]
	delete(s.Engines, username)
	s.mutex.Unlock()
	if engine != nil {
		engine.Close()
	}
}
