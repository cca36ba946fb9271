package session

import (
	"sync"

	"github.com/MiracleBell/java-go-game/internal/model"
)

// Registry is the process-wide directory of live sessions and the
// token bindings that resolve a request to its acting player.
//
// The read-write mutex guards only the map lookups, which are O(1) and
// never call into a Session, so operations on distinct sessions do not
// contend beyond the map access itself.
type Registry struct {
	mu             sync.RWMutex
	sessions       map[string]*Session     // session id -> session
	players        map[string]model.Player // token -> bound player
	playerSessions map[string]string       // login -> session id
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions:       make(map[string]*Session),
		players:        make(map[string]model.Player),
		playerSessions: make(map[string]string),
	}
}

// RegisterSession inserts a new session keyed by its id. Fails with
// ErrDuplicateSession if the id is already present; ids are generated
// globally unique, so this is a consistency check rather than an
// expected path.
func (r *Registry) RegisterSession(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID()]; ok {
		return model.ErrDuplicateSession
	}
	r.sessions[s.ID()] = s
	return nil
}

// BindPlayer records that token currently identifies player and that
// player belongs to the given session. A prior binding for the token
// is overwritten; a token identifies at most one active player.
func (r *Registry) BindPlayer(token string, player model.Player, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindLocked(token, player, sessionID)
}

func (r *Registry) bindLocked(token string, player model.Player, sessionID string) {
	if prev, ok := r.players[token]; ok {
		delete(r.playerSessions, prev.Login)
	}
	r.players[token] = player
	r.playerSessions[player.Login] = sessionID
}

// activeSessionLocked reports whether login is bound to a session that
// has not finished. Reads the session's state while holding the
// registry lock; sessions never lock the registry, so the lock order
// registry -> session cannot deadlock.
func (r *Registry) activeSessionLocked(login string) bool {
	id, ok := r.playerSessions[login]
	if !ok {
		return false
	}
	sess, ok := r.sessions[id]
	if !ok {
		return false
	}
	return sess.State() != StateFinished
}

// CreateForPlayer registers sess and binds token to its creator in one
// critical section. Fails with ErrAlreadyInGame while the login is
// still bound to an unfinished session, so concurrent creates with the
// same identity admit exactly one session.
func (r *Registry) CreateForPlayer(token string, player model.Player, sess *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activeSessionLocked(player.Login) {
		return model.ErrAlreadyInGame
	}
	if _, ok := r.sessions[sess.ID()]; ok {
		return model.ErrDuplicateSession
	}
	r.sessions[sess.ID()] = sess
	r.bindLocked(token, player, sess.ID())
	return nil
}

// JoinForPlayer seats login in the identified session and binds token
// to the resulting seat, all in one critical section. A login can
// therefore never hold seats in two unfinished sessions, even under
// concurrent joins or a join racing a create.
func (r *Registry) JoinForPlayer(token, login, sessionID string) (*Session, model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activeSessionLocked(login) {
		return nil, model.Player{}, model.ErrAlreadyInGame
	}
	sess, ok := r.sessions[sessionID]
	if !ok {
		return nil, model.Player{}, model.ErrSessionNotFound
	}
	player, err := sess.Join(login)
	if err != nil {
		return nil, model.Player{}, err
	}
	r.bindLocked(token, player, sessionID)
	return sess, player, nil
}

// Unbind removes the token's binding, if any
func (r *Registry) Unbind(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if player, ok := r.players[token]; ok {
		delete(r.playerSessions, player.Login)
		delete(r.players, token)
	}
}

// PlayerByToken resolves the player a token is bound to
func (r *Registry) PlayerByToken(token string) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[token]
	if !ok {
		return model.Player{}, model.ErrSessionNotFound
	}
	return player, nil
}

// SessionByToken resolves token -> player -> session id -> session.
// Fails with ErrSessionNotFound if any hop is missing.
func (r *Registry) SessionByToken(token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	id, ok := r.playerSessions[player.Login]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	s, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

// SessionByID looks up a session by its id
func (r *Registry) SessionByID(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

// RemoveSession drops a session and any login bindings pointing at it.
// Token bindings are kept so a later lookup reports ErrSessionNotFound
// rather than resolving to a vanished game.
func (r *Registry) RemoveSession(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	for login, sessionID := range r.playerSessions {
		if sessionID == id {
			delete(r.playerSessions, login)
		}
	}
}

// Count returns the number of registered sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
