package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Board is stored as a single document: the member list and the ordered task
// list live in JSONB columns of the same row and are always saved together.
type Board struct {
	ID         uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string                        `gorm:"not null" json:"name"`
	OwnerID    uuid.UUID                     `gorm:"type:uuid;not null;index" json:"owner_id"`
	SharedWith datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb;not null" json:"shared_with"`
	Tasks      datatypes.JSONSlice[Task]      `gorm:"type:jsonb;not null" json:"tasks"`
	CreatedAt  time.Time                     `json:"created_at"`
	UpdatedAt  time.Time                     `json:"updated_at"`
}

// IsOwner reports whether userID holds sharing rights on the board.
func (b *Board) IsOwner(userID uuid.UUID) bool {
	return b.OwnerID == userID
}

// IsSharedWith reports whether userID was added through sharing.
func (b *Board) IsSharedWith(userID uuid.UUID) bool {
	for _, id := range b.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// IsMember reports whether userID may read the board and mutate its tasks.
func (b *Board) IsMember(userID uuid.UUID) bool {
	return b.IsOwner(userID) || b.IsSharedWith(userID)
}

// TaskIndex returns the position of the task with the given id, or -1.
func (b *Board) TaskIndex(taskID uuid.UUID) int {
	for i := range b.Tasks {
		if b.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so a mutation can be discarded if saving fails.
func (b *Board) Clone() *Board {
	c := *b
	c.SharedWith = append(datatypes.JSONSlice[uuid.UUID]{}, b.SharedWith...)
	c.Tasks = append(datatypes.JSONSlice[Task]{}, b.Tasks...)
	return &c
}
