// Package service holds the board access layer: every operation resolves the
// board, checks the actor's capability, mutates a copy and saves it whole.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type capability int

const (
	// memberAccess allows reading and task mutation.
	memberAccess capability = iota
	// ownerAccess additionally allows sharing.
	ownerAccess
)

func (c capability) allows(board *model.Board, actor uuid.UUID) bool {
	if c == ownerAccess {
		return board.IsOwner(actor)
	}
	return board.IsMember(actor)
}

// TaskInput is the payload for a new task.
type TaskInput struct {
	Title       string
	Description string
}

// TaskPatch overwrites only the non-nil fields. Completion may be set back to
// false; there is no transition guard.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

type BoardServiceInterface interface {
	ListOwned(ctx context.Context, actor uuid.UUID) ([]model.Board, error)
	ListShared(ctx context.Context, actor uuid.UUID) ([]model.Board, error)
	Get(ctx context.Context, actor, boardID uuid.UUID) (*model.Board, error)
	Create(ctx context.Context, actor uuid.UUID, name string) (*model.Board, error)
	Share(ctx context.Context, actor, boardID uuid.UUID, email string) (*model.Board, error)
	AddTask(ctx context.Context, actor, boardID uuid.UUID, input TaskInput) (*model.Board, error)
	UpdateTask(ctx context.Context, actor, boardID, taskID uuid.UUID, patch TaskPatch) (*model.Board, error)
	CompleteTask(ctx context.Context, actor, boardID, taskID uuid.UUID) (*model.Board, error)
	DeleteTask(ctx context.Context, actor, boardID, taskID uuid.UUID) (*model.Board, error)
}

type BoardService struct {
	boards repository.BoardRepositoryInterface
	users  repository.UserRepositoryInterface
	logger *log.Logger
	now    func() time.Time
}

var _ BoardServiceInterface = (*BoardService)(nil)

func NewBoardService(boards repository.BoardRepositoryInterface, users repository.UserRepositoryInterface, logger *log.Logger) *BoardService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardService{
		boards: boards,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *BoardService) ListOwned(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	boards, err := s.boards.GetOwned(ctx, actor)
	if err != nil {
		return nil, internalError("Failed to retrieve boards", err)
	}
	return boards, nil
}

func (s *BoardService) ListShared(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	boards, err := s.boards.GetShared(ctx, actor)
	if err != nil {
		return nil, internalError("Failed to retrieve shared boards", err)
	}
	return boards, nil
}

func (s *BoardService) Get(ctx context.Context, actor, boardID uuid.UUID) (*model.Board, error) {
	return s.resolve(ctx, actor, boardID, memberAccess)
}

func (s *BoardService) Create(ctx context.Context, actor uuid.UUID, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("Board name is required")
	}

	now := s.now()
	board := &model.Board{
		ID:         uuid.New(),
		Name:       name,
		OwnerID:    actor,
		SharedWith: datatypes.JSONSlice[uuid.UUID]{},
		Tasks:      datatypes.JSONSlice[model.Task]{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, internalError("Failed to create board", err)
	}

	s.logger.WithFields(log.Fields{"board_id": board.ID, "actor": actor}).Info("board created")
	return board, nil
}

// Share adds the user registered under email to the board's members. Only the
// owner may share, and sharing twice with the same user is a conflict.
func (s *BoardService) Share(ctx context.Context, actor, boardID uuid.UUID, email string) (*model.Board, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, validationError("User email is required")
	}

	board, err := s.resolve(ctx, actor, boardID, ownerAccess)
	if err != nil {
		return nil, err
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, internalError("Failed to find user", err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if board.IsSharedWith(target.ID) {
		return nil, ErrAlreadyShared
	}

	next := board.Clone()
	next.SharedWith = append(next.SharedWith, target.ID)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"board_id": boardID, "actor": actor, "member": target.ID}).Info("board shared")
	return next, nil
}

func (s *BoardService) AddTask(ctx context.Context, actor, boardID uuid.UUID, input TaskInput) (*model.Board, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationError("Task title is required")
	}

	board, err := s.resolve(ctx, actor, boardID, memberAccess)
	if err != nil {
		return nil, err
	}

	now := s.now()
	next := board.Clone()
	next.Tasks = append(next.Tasks, model.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"board_id": boardID, "actor": actor}).Debug("task added")
	return next, nil
}

func (s *BoardService) UpdateTask(ctx context.Context, actor, boardID, taskID uuid.UUID, patch TaskPatch) (*model.Board, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, validationError("Task title must not be empty")
	}

	board, err := s.resolve(ctx, actor, boardID, memberAccess)
	if err != nil {
		return nil, err
	}

	i := board.TaskIndex(taskID)
	if i < 0 {
		return nil, ErrTaskNotFound
	}

	next := board.Clone()
	task := &next.Tasks[i]
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = s.now()

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"board_id": boardID, "task_id": taskID, "actor": actor}).Debug("task updated")
	return next, nil
}

func (s *BoardService) CompleteTask(ctx context.Context, actor, boardID, taskID uuid.UUID) (*model.Board, error) {
	completed := true
	return s.UpdateTask(ctx, actor, boardID, taskID, TaskPatch{Completed: &completed})
}

// DeleteTask removes the task. An id that is not on the board is a no-op and
// nothing is written.
func (s *BoardService) DeleteTask(ctx context.Context, actor, boardID, taskID uuid.UUID) (*model.Board, error) {
	board, err := s.resolve(ctx, actor, boardID, memberAccess)
	if err != nil {
		return nil, err
	}

	i := board.TaskIndex(taskID)
	if i < 0 {
		return board, nil
	}

	next := board.Clone()
	next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"board_id": boardID, "task_id": taskID, "actor": actor}).Debug("task deleted")
	return next, nil
}

// resolve is the only place boards are loaded for an actor. Absent and
// forbidden boards produce the same ErrBoardNotFound.
func (s *BoardService) resolve(ctx context.Context, actor, boardID uuid.UUID, need capability) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to retrieve board", err)
	}
	if board == nil || !need.allows(board, actor) {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

func (s *BoardService) save(ctx context.Context, board *model.Board) error {
	board.UpdatedAt = s.now()
	if err := s.boards.Save(ctx, board); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return ErrBoardNotFound
		}
		return internalError("Failed to save board", err)
	}
	return nil
}
