package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var boardColumns = []string{"id", "name", "owner_id", "shared_with", "tasks", "created_at", "updated_at"}

func TestBoardRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	board := &model.Board{
		ID:      uuid.New(),
		Name:    "Groceries",
		OwnerID: uuid.New(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "boards"`).
		WithArgs(board.ID, board.Name, board.OwnerID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := boardRepo.Create(context.Background(), board)

	assert.NoError(t, err)
	assert.NotNil(t, board.SharedWith, "shared_with is stored as an empty array")
	assert.NotNil(t, board.Tasks, "tasks is stored as an empty array")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID, ownerID, memberID, taskID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	tasks := `[{"id":"` + taskID.String() + `","title":"Milk","description":"","completed":false,` +
		`"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(boardColumns).
			AddRow(boardID.String(), "Groceries", ownerID.String(), []byte(`["`+memberID.String()+`"]`), []byte(tasks), time.Now(), time.Now()))

	board, err := boardRepo.GetByID(context.Background(), boardID)

	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Equal(t, boardID, board.ID)
	assert.Equal(t, ownerID, board.OwnerID)
	assert.Equal(t, datatypes.JSONSlice[uuid.UUID]{memberID}, board.SharedWith)
	require.Len(t, board.Tasks, 1)
	assert.Equal(t, taskID, board.Tasks[0].ID)
	assert.Equal(t, "Milk", board.Tasks[0].Title)
	assert.False(t, board.Tasks[0].Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(boardColumns))

	board, err := boardRepo.GetByID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ownerID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE owner_id = \$1 ORDER BY created_at`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(boardColumns).
			AddRow(uuid.NewString(), "One", ownerID.String(), []byte(`[]`), []byte(`[]`), time.Now(), time.Now()).
			AddRow(uuid.NewString(), "Two", ownerID.String(), []byte(`[]`), []byte(`[]`), time.Now(), time.Now()))

	boards, err := boardRepo.GetOwned(context.Background(), ownerID)

	assert.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "One", boards[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetShared(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	memberID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE shared_with @> \$1::jsonb ORDER BY created_at`).
		WithArgs(`["` + memberID.String() + `"]`).
		WillReturnRows(sqlmock.NewRows(boardColumns).
			AddRow(uuid.NewString(), "Shared", uuid.NewString(), []byte(`["`+memberID.String()+`"]`), []byte(`[]`), time.Now(), time.Now()))

	boards, err := boardRepo.GetShared(context.Background(), memberID)

	assert.NoError(t, err)
	require.Len(t, boards, 1)
	assert.True(t, boards[0].IsSharedWith(memberID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Save(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	board := &model.Board{ID: uuid.New(), Name: "Groceries", OwnerID: uuid.New(), UpdatedAt: time.Now()}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "boards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := boardRepo.Save(context.Background(), board)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Save_Missing(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "boards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := boardRepo.Save(context.Background(), &model.Board{ID: uuid.New()})

	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Save_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "boards" SET`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := boardRepo.Save(context.Background(), &model.Board{ID: uuid.New()})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
