package session

import (
	"sync"
	"time"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
)

// Manager administra las sesiones de captura activas. Las sesiones son
// transitorias, viven solo en memoria y son independientes entre sí: el envío
// de una no suspende la construcción de otra.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now       func() time.Time
	onSuccess func()
}

// NewManager construye el administrador. onSuccess se propaga a cada sesión
// (re-fetch de stock tras un envío exitoso); puede ser nil.
func NewManager(now func() time.Time, onSuccess func()) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		now:       now,
		onSuccess: onSuccess,
	}
}

// Create abre una sesión nueva en Idle.
func (m *Manager) Create() *Session {
	s := New(m.now, m.onSuccess)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

// Get devuelve la sesión por id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Remove descarta la sesión por id (cancelándola primero).
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Cancel()
	}
}
