package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

var (
	// ErrUnauthorized is returned when a mutation is attempted without an
	// authenticated session.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrCSRFMismatch is returned when a submitted CSRF token is absent,
	// wrong, or already consumed.
	ErrCSRFMismatch = errors.New("csrf token mismatch")
)

// csrfTokenBytes is the entropy of an issued CSRF token before encoding.
const csrfTokenBytes = 16

// Session is the per-browser state bound to one session cookie. It holds at
// most one authenticated user id and at most one pending CSRF token.
//
// The session store hands out pointers; all state transitions go through the
// methods below, which serialize access. The wider design still assumes at
// most one meaningful in-flight mutation per session: a double submission
// loses the CSRF race and fails with ErrCSRFMismatch.
type Session struct {
	id string

	mu        sync.Mutex
	userID    int64
	csrfToken string
}

// ID returns the opaque session identifier carried by the cookie.
func (s *Session) ID() string {
	return s.id
}

// Login transitions the session to authenticated(userID). Callers must only
// invoke it after credential verification succeeded.
func (s *Session) Login(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// Logout clears any bound identity.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = 0
}

// Authenticated reports whether an identity is bound to the session.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID != 0
}

// UserID returns the bound identity, or 0 when unauthenticated.
func (s *Session) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// CurrentUser resolves the bound identity against the users store. It
// returns (nil, nil) for an unauthenticated session. A bound id that no
// longer resolves clears the identity rather than erroring, so a deleted
// user degrades to logged-out.
func (s *Session) CurrentUser(users store.UsersStore) (*store.User, error) {
	id := s.UserID()
	if id == 0 {
		return nil, nil
	}

	user, err := users.FetchUser(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Logout()
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// RequireAuthenticated is CurrentUser for mutation handlers that must not
// silently proceed: an absent identity is ErrUnauthorized.
func (s *Session) RequireAuthenticated(users store.UsersStore) (*store.User, error) {
	user, err := s.CurrentUser(users)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// IssueCSRF generates a fresh random token, stores it as the session's
// single pending token (overwriting any previous one) and returns it for
// embedding in the rendered form.
func (s *Session) IssueCSRF() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.StdEncoding.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.csrfToken = token
	return token, nil
}

// ConsumeCSRF validates a submitted token against the session's pending
// token. The pending token is cleared unconditionally: replaying an old
// form always fails, whatever the match outcome was.
func (s *Session) ConsumeCSRF(supplied string) error {
	s.mu.Lock()
	expected := s.csrfToken
	s.csrfToken = ""
	s.mu.Unlock()

	if expected == "" || supplied != expected {
		return ErrCSRFMismatch
	}
	return nil
}

// Store is the session store abstraction: get/create/clear by session id.
// Lifecycle (cookie issuance, expiry) is owned by the request middleware.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: map[string]*Session{}}
}

// Get returns the session for an id, if one exists.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Create registers a new unauthenticated session under a fresh identifier.
func (st *Store) Create() *Session {
	sess := &Session{id: uuid.NewString()}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.id] = sess
	return sess
}

// Clear destroys the session for an id.
func (st *Store) Clear(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
