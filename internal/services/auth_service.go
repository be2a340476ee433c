package services

import (
	"crypto/subtle"
	"strings"

	"gestorpro/internal/domain"
	applog "gestorpro/internal/log"
	"gestorpro/internal/repos"
	"gestorpro/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is lowered in tests.
var BcryptCost = 12

type AuthService struct {
	Users    *repos.UserRepo
	Sessions *repos.SessionRepo
	IDs      *IDGen
}

func NewAuthService(users *repos.UserRepo, sessions *repos.SessionRepo, ids *IDGen) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, IDs: ids}
}

// Register creates an account and logs it in.
func (s *AuthService) Register(name, email, pass string) (*domain.User, error) {
	name, okName := validate.Name(name)
	email, okEmail := validate.Email(email)
	if !okName || !okEmail || !validate.Password(pass) {
		return nil, ErrInvalidSignup
	}
	if len(s.Users.ByEmail(email)) > 0 {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pass), BcryptCost)
	if err != nil {
		return nil, err
	}
	u := domain.User{ID: s.IDs.Next(), Name: name, Email: email, Pass: string(h)}
	if !s.Users.Put(u) {
		return nil, ErrPersist
	}
	applog.Audit(nil, "auth.register", map[string]any{"email": email})
	return s.startSession(u)
}

// Login checks the credentials against every account with that email, in
// registration order. Plaintext passwords left by older data are accepted
// once and replaced with a hash.
func (s *AuthService) Login(email, pass string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || pass == "" {
		return nil, ErrBadCreds
	}
	for _, u := range s.Users.ByEmail(email) {
		if !isHash(u.Pass) {
			if subtle.ConstantTimeCompare([]byte(u.Pass), []byte(pass)) != 1 {
				continue
			}
			if h, err := bcrypt.GenerateFromPassword([]byte(pass), BcryptCost); err == nil {
				u.Pass = string(h)
				if !s.Users.Put(u) {
					applog.Warn(nil, "auth.rehash.fail", ErrPersist, map[string]any{"user_id": u.ID})
				}
			}
			return s.startSession(u)
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Pass), []byte(pass)) == nil {
			return s.startSession(u)
		}
	}
	return nil, ErrBadCreds
}

func isHash(p string) bool { return strings.HasPrefix(p, "$2") }

func (s *AuthService) startSession(u domain.User) (*domain.User, error) {
	u.Pass = ""
	if err := s.Sessions.SaveUser(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Resume returns the user cached by the last login, or nil.
func (s *AuthService) Resume() (*domain.User, error) {
	return s.Sessions.User()
}

func (s *AuthService) Logout() error {
	return s.Sessions.Clear()
}
