package mongorepo

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BoardRepository struct {
	coll *mongo.Collection
}

var _ repository.BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{coll: db.Collection(boardsCollection)}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	if _, err := r.coll.InsertOne(ctx, toBoardDocument(board)); err != nil {
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var doc boardDocument
	err := r.coll.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find board: %w", err)
	}
	return doc.toModel()
}

func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	return r.find(ctx, ownedBy(ownerID))
}

func (r *BoardRepository) GetShared(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return r.find(ctx, sharedWith(userID))
}

// Save replaces the whole document; the last writer wins.
func (r *BoardRepository) Save(ctx context.Context, board *model.Board) error {
	res, err := r.coll.ReplaceOne(ctx, byID(board.ID), toBoardDocument(board))
	if err != nil {
		return fmt.Errorf("replace board %s: %w", board.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepository) find(ctx context.Context, filter bson.M) ([]model.Board, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find boards: %w", err)
	}

	var docs []boardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}

	boards := make([]model.Board, 0, len(docs))
	for _, doc := range docs {
		board, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, nil
}
