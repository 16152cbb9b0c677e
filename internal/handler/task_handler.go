package handler

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Task routes live under a board and answer with the whole board, so they
// share BoardHandler's service and presenter.

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// AddTask appends a task to a board
// @Summary   Add task
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Param     request body CreateTaskRequest true "Task"
// @Success   201 {object} BoardResponse
// @Failure   400 {object} map[string]string
// @Failure   404 {object} map[string]string
// @Router    /boards/{id}/tasks [post]
func (h *BoardHandler) AddTask(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.AddTask(c.Request.Context(), userID, pathID(c, "id"), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	h.respondBoard(c, http.StatusCreated, board, err)
}

// UpdateTask overwrites the provided task fields
// @Summary   Update task
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Param     taskId path string true "Task ID"
// @Param     request body UpdateTaskRequest true "Fields to change"
// @Success   200 {object} BoardResponse
// @Failure   400 {object} map[string]string
// @Failure   404 {object} map[string]string
// @Router    /boards/{id}/tasks/{taskId} [put]
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.UpdateTask(c.Request.Context(), userID, pathID(c, "id"), pathID(c, "taskId"), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	h.respondBoard(c, http.StatusOK, board, err)
}

// CompleteTask marks a task as done
// @Summary   Complete task
// @Tags      Tasks
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Param     taskId path string true "Task ID"
// @Success   200 {object} BoardResponse
// @Failure   404 {object} map[string]string
// @Router    /boards/{id}/tasks/{taskId}/complete [post]
func (h *BoardHandler) CompleteTask(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	board, err := h.boards.CompleteTask(c.Request.Context(), userID, pathID(c, "id"), pathID(c, "taskId"))
	h.respondBoard(c, http.StatusOK, board, err)
}

// DeleteTask removes a task from a board
// @Summary   Delete task
// @Tags      Tasks
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Param     taskId path string true "Task ID"
// @Success   200 {object} BoardResponse
// @Failure   404 {object} map[string]string
// @Router    /boards/{id}/tasks/{taskId} [delete]
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	board, err := h.boards.DeleteTask(c.Request.Context(), userID, pathID(c, "id"), pathID(c, "taskId"))
	h.respondBoard(c, http.StatusOK, board, err)
}
