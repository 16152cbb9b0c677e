package service_test

import (
	"context"
	"sort"
	"sync"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// memoryBoards is an in-memory whole-document store. It hands out copies so a
// test can tell what was actually persisted.
type memoryBoards struct {
	mu      sync.Mutex
	boards  map[uuid.UUID]*model.Board
	saves   int
	saveErr error
	getErr  error
}

func newMemoryBoards() *memoryBoards {
	return &memoryBoards{boards: map[uuid.UUID]*model.Board{}}
}

func (m *memoryBoards) Create(ctx context.Context, board *model.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[board.ID] = board.Clone()
	return nil
}

func (m *memoryBoards) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.boards[id]
	if !ok {
		return nil, nil
	}
	return b.Clone(), nil
}

func (m *memoryBoards) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	return m.filter(func(b *model.Board) bool { return b.OwnerID == ownerID }), nil
}

func (m *memoryBoards) GetShared(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return m.filter(func(b *model.Board) bool { return b.IsSharedWith(userID) }), nil
}

func (m *memoryBoards) Save(ctx context.Context, board *model.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.boards[board.ID]; !ok {
		return repository.ErrBoardNotFound
	}
	m.saves++
	m.boards[board.ID] = board.Clone()
	return nil
}

func (m *memoryBoards) stored(id uuid.UUID) *model.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boards[id].Clone()
}

func (m *memoryBoards) filter(keep func(*model.Board) bool) []model.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Board
	for _, b := range m.boards {
		if keep(b) {
			out = append(out, *b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type memoryUsers struct {
	users map[uuid.UUID]*model.User
}

func newMemoryUsers(users ...*model.User) *memoryUsers {
	m := &memoryUsers{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryUsers) Create(ctx context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.users[id], nil
}

func (m *memoryUsers) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}
