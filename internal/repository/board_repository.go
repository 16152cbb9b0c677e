package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoardRepositoryInterface stores boards as whole documents. GetByID returns
// nil, nil when no board has the id. Save replaces the stored document.
type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	GetShared(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	Save(ctx context.Context, board *model.Board) error
}

type BoardRepository struct {
	db *gorm.DB
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	normalize(board)
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at").Find(&boards).Error
	return boards, err
}

// GetShared uses JSONB containment on the shared_with array.
func (r *BoardRepository) GetShared(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	member, err := json.Marshal([]string{userID.String()})
	if err != nil {
		return nil, err
	}

	var boards []model.Board
	err = r.db.WithContext(ctx).
		Where("shared_with @> ?::jsonb", string(member)).
		Order("created_at").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// Save writes the whole document in one UPDATE. Concurrent saves of the same
// board are last-writer-wins.
func (r *BoardRepository) Save(ctx context.Context, board *model.Board) error {
	normalize(board)
	result := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]interface{}{
			"name":        board.Name,
			"shared_with": board.SharedWith,
			"tasks":       board.Tasks,
			"updated_at":  board.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("save board %s: %w", board.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// normalize keeps the JSONB columns as arrays rather than null.
func normalize(board *model.Board) {
	if board.SharedWith == nil {
		board.SharedWith = datatypes.JSONSlice[uuid.UUID]{}
	}
	if board.Tasks == nil {
		board.Tasks = datatypes.JSONSlice[model.Task]{}
	}
}
