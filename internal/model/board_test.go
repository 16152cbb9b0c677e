package model_test

import (
	"testing"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestBoard_Membership(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()

	board := &model.Board{
		ID:         uuid.New(),
		OwnerID:    owner,
		SharedWith: datatypes.JSONSlice[uuid.UUID]{member},
	}

	assert.True(t, board.IsOwner(owner))
	assert.False(t, board.IsOwner(member))

	assert.True(t, board.IsMember(owner))
	assert.True(t, board.IsMember(member))
	assert.False(t, board.IsMember(stranger))

	assert.False(t, board.IsSharedWith(owner))
	assert.True(t, board.IsSharedWith(member))
}

func TestBoard_TaskIndex(t *testing.T) {
	first := model.Task{ID: uuid.New(), Title: "first"}
	second := model.Task{ID: uuid.New(), Title: "second"}
	board := &model.Board{Tasks: datatypes.JSONSlice[model.Task]{first, second}}

	assert.Equal(t, 0, board.TaskIndex(first.ID))
	assert.Equal(t, 1, board.TaskIndex(second.ID))
	assert.Equal(t, -1, board.TaskIndex(uuid.New()))
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	member := uuid.New()
	board := &model.Board{
		ID:         uuid.New(),
		Name:       "Groceries",
		SharedWith: datatypes.JSONSlice[uuid.UUID]{member},
		Tasks:      datatypes.JSONSlice[model.Task]{{ID: uuid.New(), Title: "Milk"}},
	}

	clone := board.Clone()
	clone.Name = "Hardware"
	clone.SharedWith = append(clone.SharedWith, uuid.New())
	clone.Tasks[0].Completed = true
	clone.Tasks = append(clone.Tasks, model.Task{ID: uuid.New(), Title: "Nails"})

	assert.Equal(t, "Groceries", board.Name)
	assert.Len(t, board.SharedWith, 1)
	assert.Len(t, board.Tasks, 1)
	assert.False(t, board.Tasks[0].Completed)
}
