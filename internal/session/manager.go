// internal/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/database/redis"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/auth"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrMissingLogin    = errors.New("email and password are required")
)

// Store persists session records between requests and restarts
type Store interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Record is what survives in the store. BackendToken never leaves the gateway.
type Record struct {
	ID           string     `json:"id"`
	BackendToken string     `json:"backend_token,omitempty"`
	User         *user.User `json:"user,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Manager owns every live workspace
type Manager struct {
	store     Store
	tokens    *auth.JWTManager
	newClient ClientFactory
	logger    *logrus.Logger
	ttl       time.Duration
	prefix    string

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewManager creates a session manager
func NewManager(cfg config.SessionConfig, store Store, tokens *auth.JWTManager, newClient ClientFactory, logger *logrus.Logger) *Manager {
	return &Manager{
		store:      store,
		tokens:     tokens,
		newClient:  newClient,
		logger:     logger,
		ttl:        cfg.TTL,
		prefix:     cfg.KeyPrefix,
		workspaces: make(map[string]*Workspace),
	}
}

func (m *Manager) key(id string) string {
	return m.prefix + id
}

// Create starts a guest session and returns it with its signed token
func (m *Manager) Create(ctx context.Context) (*Workspace, string, error) {
	id := uuid.New().String()
	record := Record{ID: id, CreatedAt: time.Now().UTC()}

	if err := m.store.SetJSON(ctx, m.key(id), record, m.ttl); err != nil {
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := m.tokens.GenerateSessionToken(id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	ws := newWorkspace(id, record.CreatedAt, m.newClient(""), m.logger)

	m.mu.Lock()
	m.workspaces[id] = ws
	m.mu.Unlock()

	m.logger.WithField("session_id", id).Info("Session created")
	return ws, token, nil
}

// Resolve validates a session token and returns its workspace. A workspace
// lost to a restart is rebuilt from its stored record.
func (m *Manager) Resolve(ctx context.Context, token string) (*Workspace, error) {
	claims, err := m.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}
	id := claims.SessionID

	if err := m.store.Expire(ctx, m.key(id), m.ttl); err != nil {
		m.drop(id)
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	m.mu.RLock()
	ws, ok := m.workspaces[id]
	m.mu.RUnlock()
	if ok {
		ws.touch()
		return ws, nil
	}

	return m.restore(ctx, id)
}

func (m *Manager) restore(ctx context.Context, id string) (*Workspace, error) {
	var record Record
	if err := m.store.GetJSON(ctx, m.key(id), &record); err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	ws := newWorkspace(id, record.CreatedAt, m.newClient(""), m.logger)
	if record.BackendToken != "" && record.User != nil {
		ws.mu.Lock()
		ws.bind(m.newClient(record.BackendToken), record.User)
		ws.mu.Unlock()
		m.load(ctx, ws)
	}

	m.mu.Lock()
	if existing, ok := m.workspaces[id]; ok {
		ws = existing
	} else {
		m.workspaces[id] = ws
	}
	m.mu.Unlock()

	m.logger.WithField("session_id", id).Info("Session restored")
	return ws, nil
}

// Login signs the shopper in with email and password
func (m *Manager) Login(ctx context.Context, ws *Workspace, email, password string) (*user.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingLogin
	}

	result, err := m.newClient("").Login(ctx, email, password)
	if err != nil {
		m.logger.WithError(err).WithField("email", email).Warn("Login failed")
		return nil, err
	}

	if err := m.Attach(ctx, ws, result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// Attach binds backend credentials to the session, as after login or OTP
// verification, and loads the cart and order history concurrently.
func (m *Manager) Attach(ctx context.Context, ws *Workspace, result *user.AuthResult) error {
	if result == nil || result.Token == "" {
		return fmt.Errorf("attach session %s: missing credentials", ws.ID())
	}

	current := result.User
	record := Record{
		ID:           ws.ID(),
		BackendToken: result.Token,
		User:         &current,
		CreatedAt:    ws.CreatedAt(),
	}
	if err := m.store.SetJSON(ctx, m.key(ws.ID()), record, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	ws.mu.Lock()
	ws.bind(m.newClient(result.Token), &current)
	ws.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"session_id": ws.ID(),
		"user_id":    current.ID,
	}).Info("Shopper signed in")

	m.load(ctx, ws)
	return nil
}

// load fetches cart and orders side by side. Failures are already reflected
// in each view, so they are only logged here.
func (m *Manager) load(ctx context.Context, ws *Workspace) {
	var g errgroup.Group
	g.Go(func() error { return ws.Cart().Load(ctx) })
	g.Go(func() error { return ws.Orders().Load(ctx) })
	if err := g.Wait(); err != nil {
		m.logger.WithError(err).WithField("session_id", ws.ID()).Warn("Initial session load incomplete")
	}
}

// Logout ends the session. Its token stops resolving immediately.
func (m *Manager) Logout(ctx context.Context, ws *Workspace) error {
	m.drop(ws.ID())
	if err := m.store.Del(ctx, m.key(ws.ID())); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger.WithField("session_id", ws.ID()).Info("Session ended")
	return nil
}

// Prune forgets workspaces idle for longer than the session TTL. Their
// records have expired from the store by then.
func (m *Manager) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, ws := range m.workspaces {
		if now.Sub(ws.LastSeen()) > m.ttl {
			delete(m.workspaces, id)
			pruned++
		}
	}
	return pruned
}

// RunJanitor prunes idle workspaces every interval until ctx is done
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Prune(now); n > 0 {
				m.logger.WithField("pruned", n).Debug("Pruned idle sessions")
			}
		}
	}
}

// Active returns the number of workspaces held in memory
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}

func (m *Manager) drop(id string) {
	m.mu.Lock()
	delete(m.workspaces, id)
	m.mu.Unlock()
}
