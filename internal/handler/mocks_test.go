package handler_test

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

type MockBoardService struct {
	mock.Mock
}

func boardResult(args mock.Arguments) (*model.Board, error) {
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardService) ListOwned(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, actor)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardService) ListShared(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, actor)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardService) Get(ctx context.Context, actor, boardID uuid.UUID) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, boardID))
}

func (m *MockBoardService) Create(ctx context.Context, actor uuid.UUID, name string) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, name))
}

func (m *MockBoardService) Share(ctx context.Context, actor, boardID uuid.UUID, email string) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, boardID, email))
}

func (m *MockBoardService) AddTask(ctx context.Context, actor, boardID uuid.UUID, input service.TaskInput) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, boardID, input))
}

func (m *MockBoardService) UpdateTask(ctx context.Context, actor, boardID, taskID uuid.UUID, patch service.TaskPatch) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, boardID, taskID, patch))
}

func (m *MockBoardService) CompleteTask(ctx context.Context, actor, boardID, taskID uuid.UUID) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, boardID, taskID))
}

func (m *MockBoardService) DeleteTask(ctx context.Context, actor, boardID, taskID uuid.UUID) (*model.Board, error) {
	return boardResult(m.Called(ctx, actor, boardID, taskID))
}

var _ service.BoardServiceInterface = (*MockBoardService)(nil)
