package handler

import (
	"context"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type BoardResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Owner      UserResponse   `json:"owner"`
	SharedWith []UserResponse `json:"shared_with"`
	Tasks      []TaskResponse `json:"tasks"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Email: u.Email, Username: u.Username}
}

// boardPresenter renders boards with owner and member profiles filled in from
// the user store. A user that no longer exists is rendered by id only.
type boardPresenter struct {
	users repository.UserRepositoryInterface
}

func (p boardPresenter) one(ctx context.Context, board *model.Board) (BoardResponse, error) {
	out, err := p.many(ctx, []model.Board{*board})
	if err != nil {
		return BoardResponse{}, err
	}
	return out[0], nil
}

func (p boardPresenter) many(ctx context.Context, boards []model.Board) ([]BoardResponse, error) {
	profiles, err := p.profiles(ctx, boards)
	if err != nil {
		return nil, err
	}

	lookup := func(id uuid.UUID) UserResponse {
		if u, ok := profiles[id]; ok {
			return u
		}
		return UserResponse{ID: id.String()}
	}

	out := make([]BoardResponse, 0, len(boards))
	for _, b := range boards {
		resp := BoardResponse{
			ID:         b.ID.String(),
			Name:       b.Name,
			Owner:      lookup(b.OwnerID),
			SharedWith: make([]UserResponse, 0, len(b.SharedWith)),
			Tasks:      make([]TaskResponse, 0, len(b.Tasks)),
			CreatedAt:  b.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  b.UpdatedAt.Format(time.RFC3339),
		}
		for _, id := range b.SharedWith {
			resp.SharedWith = append(resp.SharedWith, lookup(id))
		}
		for _, t := range b.Tasks {
			resp.Tasks = append(resp.Tasks, TaskResponse{
				ID:          t.ID.String(),
				Title:       t.Title,
				Description: t.Description,
				Completed:   t.Completed,
				CreatedAt:   t.CreatedAt.Format(time.RFC3339),
				UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

func (p boardPresenter) profiles(ctx context.Context, boards []model.Board) (map[uuid.UUID]UserResponse, error) {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, b := range boards {
		add(b.OwnerID)
		for _, id := range b.SharedWith {
			add(id)
		}
	}

	users, err := p.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, &service.Error{Kind: service.KindInternal, Message: "Failed to load board members", Err: err}
	}

	profiles := make(map[uuid.UUID]UserResponse, len(users))
	for i := range users {
		profiles[users[i].ID] = newUserResponse(&users[i])
	}
	return profiles, nil
}
