package mongorepo

import (
	"fmt"
	"time"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/datatypes"
)

// Identifiers are stored as canonical UUID strings so documents stay
// readable from the mongo shell.

type boardDocument struct {
	ID         string         `bson:"_id"`
	Name       string         `bson:"name"`
	OwnerID    string         `bson:"owner_id"`
	SharedWith []string       `bson:"shared_with"`
	Tasks      []taskDocument `bson:"tasks"`
	CreatedAt  time.Time      `bson:"created_at"`
	UpdatedAt  time.Time      `bson:"updated_at"`
}

type taskDocument struct {
	ID          string    `bson:"id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Completed   bool      `bson:"completed"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type userDocument struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	Username       string    `bson:"username"`
	HashedPassword string    `bson:"hashed_password"`
	CreatedAt      time.Time `bson:"created_at"`
}

func toBoardDocument(b *model.Board) boardDocument {
	doc := boardDocument{
		ID:         b.ID.String(),
		Name:       b.Name,
		OwnerID:    b.OwnerID.String(),
		SharedWith: make([]string, 0, len(b.SharedWith)),
		Tasks:      make([]taskDocument, 0, len(b.Tasks)),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	for _, id := range b.SharedWith {
		doc.SharedWith = append(doc.SharedWith, id.String())
	}
	for _, t := range b.Tasks {
		doc.Tasks = append(doc.Tasks, taskDocument{
			ID:          t.ID.String(),
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return doc
}

func (d boardDocument) toModel() (*model.Board, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("board _id %q: %w", d.ID, err)
	}
	ownerID, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("board %s owner_id: %w", d.ID, err)
	}

	board := &model.Board{
		ID:         id,
		Name:       d.Name,
		OwnerID:    ownerID,
		SharedWith: make(datatypes.JSONSlice[uuid.UUID], 0, len(d.SharedWith)),
		Tasks:      make(datatypes.JSONSlice[model.Task], 0, len(d.Tasks)),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for _, raw := range d.SharedWith {
		memberID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("board %s shared_with: %w", d.ID, err)
		}
		board.SharedWith = append(board.SharedWith, memberID)
	}
	for _, t := range d.Tasks {
		taskID, err := uuid.Parse(t.ID)
		if err != nil {
			return nil, fmt.Errorf("board %s task id: %w", d.ID, err)
		}
		board.Tasks = append(board.Tasks, model.Task{
			ID:          taskID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return board, nil
}

func toUserDocument(u *model.User) userDocument {
	return userDocument{
		ID:             u.ID.String(),
		Email:          u.Email,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
	}
}

func (d userDocument) toModel() (*model.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user _id %q: %w", d.ID, err)
	}
	return &model.User{
		ID:             id,
		Email:          d.Email,
		Username:       d.Username,
		HashedPassword: d.HashedPassword,
		CreatedAt:      d.CreatedAt,
	}, nil
}

func byID(id uuid.UUID) bson.M {
	return bson.M{"_id": id.String()}
}

func byIDs(ids []uuid.UUID) bson.M {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	return bson.M{"_id": bson.M{"$in": values}}
}

func ownedBy(ownerID uuid.UUID) bson.M {
	return bson.M{"owner_id": ownerID.String()}
}

// sharedWith matches documents whose shared_with array contains userID.
func sharedWith(userID uuid.UUID) bson.M {
	return bson.M{"shared_with": userID.String()}
}
