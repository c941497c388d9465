package auth

import (
	"sync"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

// SessionStore — таблица сессий процесса. Сессии не переживают перезапуск.
// Несколько одновременных сессий одного пользователя допускаются.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore создаёт таблицу сессий. ttl == 0 отключает истечение.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create заводит новую сессию для пользователя.
func (s *SessionStore) Create(userID uuid.UUID) domain.Session {
	now := s.now()
	sess := domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		sess.ExpiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get возвращает действующую сессию. Истёкшая сессия удаляется и считается отсутствующей.
func (s *SessionStore) Get(token string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, false
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		return domain.Session{}, false
	}
	return sess, true
}

// Delete удаляет сессию. Возвращает false, если действующей сессии не было.
func (s *SessionStore) Delete(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	delete(s.sessions, token)
	return !sess.Expired(s.now())
}

// Len возвращает число действующих сессий, попутно вычищая истёкшие.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
		}
	}
	return len(s.sessions)
}
