// Package memory keeps users and revoked tokens in process memory. It backs
// STORAGE_DRIVER=memory and the default token denylist.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/domain/model"
	"github.com/polkiloo/authkeeper/internal/domain/repository"
)

// Storage is a repository factory over a guarded map.
type Storage struct {
	mu      sync.RWMutex
	byEmail map[string]*model.User
	nextID  int64
	now     func() time.Time
}

type userRepository struct {
	storage *Storage
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{
		byEmail: make(map[string]*model.User),
		nextID:  1,
		now:     time.Now,
	}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

// Create checks and inserts under one lock, so a duplicate email can never slip in.
func (r *userRepository) Create(_ context.Context, user *model.User) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}

	stored := cloneUser(user)
	stored.ID = strconv.FormatInt(s.nextID, 10)
	stored.CreatedAt = s.now().UTC()
	s.nextID++

	s.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneUser(u), nil
}

// cloneUser copies u including the birth date it points to.
func cloneUser(u *model.User) *model.User {
	out := *u
	if u.BirthDate != nil {
		birth := *u.BirthDate
		out.BirthDate = &birth
	}
	return &out
}
