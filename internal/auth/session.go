package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pizzastore/internal/apperr"
	"pizzastore/models"
)

// UserLookup is the part of the user repository the authenticator reads.
type UserLookup interface {
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	RoleOf(ctx context.Context, login string) (models.Role, error)
}

// Session is the result of a successful login.
type Session struct {
	Login string
	Role  models.Role
	Token string
}

// Principal returns the caller described by the session.
func (s *Session) Principal() *Principal {
	return &Principal{Name: s.Login, Kind: s.Role}
}

// Authenticator checks credentials and issues session tokens.
type Authenticator struct {
	Users  UserLookup
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

const loginFailed = "Login failed: login or password is incorrect"

// Login authenticates login/password. Unknown logins and wrong passwords fail
// the same way.
func (a *Authenticator) Login(ctx context.Context, login, password string) (*Session, error) {
	u, err := a.Users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if u == nil || !PasswordMatches(u.Password, password) {
		return nil, apperr.Auth("login", loginFailed)
	}
	role, err := a.Users.RoleOf(ctx, login)
	if err != nil {
		return nil, err
	}
	tok, err := issueJWT(Principal{Name: login, Kind: role}, a.Secret, a.ttl(), a.now())
	if err != nil {
		return nil, apperr.Auth("issue session", "%v", err)
	}
	return &Session{Login: login, Role: role, Token: tok}, nil
}

// Resume validates a session token. An expired or tampered token ends the
// session.
func (a *Authenticator) Resume(token string) (*Principal, error) {
	p, err := parseJWT(token, a.Secret)
	if err != nil {
		return nil, apperr.Auth("resume session", "session expired, please log in again")
	}
	return p, nil
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// PasswordMatches compares a supplied password with the stored value. Stored
// bcrypt hashes are verified as such; anything else is compared exactly.
func PasswordMatches(stored, supplied string) bool {
	stored = strings.TrimRight(stored, " ")
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return stored == supplied
}

func isBcrypt(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

func (a *Authenticator) ttl() time.Duration {
	if a.TTL <= 0 {
		return time.Hour
	}
	return a.TTL
}

func (a *Authenticator) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
