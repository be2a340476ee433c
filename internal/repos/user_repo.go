package repos

import (
	"strings"

	"gestorpro/internal/domain"
	"gestorpro/internal/store"
)

type UserRepo struct{ t store.Tables }

func NewUserRepo(t store.Tables) *UserRepo { return &UserRepo{t: t} }

func (r *UserRepo) All() []domain.User {
	return store.Load[domain.User](r.t, store.Users)
}

func (r *UserRepo) Replace(users []domain.User) bool {
	return r.t.ReplaceCollection(store.Users, users)
}

// ByEmail returns every user registered under email, oldest first.
func (r *UserRepo) ByEmail(email string) []domain.User {
	var out []domain.User
	for _, u := range r.All() {
		if strings.EqualFold(u.Email, email) {
			out = append(out, u)
		}
	}
	return out
}

// Put replaces the user with the same id or appends it.
func (r *UserRepo) Put(u domain.User) bool {
	users := r.All()
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return r.Replace(users)
		}
	}
	return r.Replace(append(users, u))
}
