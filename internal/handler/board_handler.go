package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type BoardHandler struct {
	boards    service.BoardServiceInterface
	presenter boardPresenter
	logger    *log.Logger
}

func NewBoardHandler(boards service.BoardServiceInterface, users repository.UserRepositoryInterface, logger *log.Logger) *BoardHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardHandler{
		boards:    boards,
		presenter: boardPresenter{users: users},
		logger:    logger,
	}
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type ShareBoardRequest struct {
	UserEmail string `json:"userEmail" binding:"required"`
}

// ListOwned returns boards owned by the authenticated user
// @Summary   List own boards
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Success   200 {array} BoardResponse
// @Failure   401 {object} map[string]string
// @Router    /boards [get]
func (h *BoardHandler) ListOwned(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	boards, err := h.boards.ListOwned(c.Request.Context(), userID)
	h.respondList(c, boards, err)
}

// ListShared returns boards other users shared with the authenticated user
// @Summary   List shared boards
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Success   200 {array} BoardResponse
// @Failure   401 {object} map[string]string
// @Router    /boards/shared [get]
func (h *BoardHandler) ListShared(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	boards, err := h.boards.ListShared(c.Request.Context(), userID)
	h.respondList(c, boards, err)
}

// Get returns a board with its tasks
// @Summary   Get board
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Success   200 {object} BoardResponse
// @Failure   404 {object} map[string]string
// @Router    /boards/{id} [get]
func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), userID, pathID(c, "id"))
	h.respondBoard(c, http.StatusOK, board, err)
}

// Create creates a new board for the authenticated user
// @Summary   Create board
// @Tags      Boards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     request body CreateBoardRequest true "Board name"
// @Success   201 {object} BoardResponse
// @Failure   400 {object} map[string]string
// @Router    /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.Create(c.Request.Context(), userID, req.Name)
	h.respondBoard(c, http.StatusCreated, board, err)
}

// Share grants another user access to a board
// @Summary   Share board
// @Tags      Boards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Param     request body ShareBoardRequest true "User to share with"
// @Success   200 {object} BoardResponse
// @Failure   404 {object} map[string]string
// @Failure   409 {object} map[string]string
// @Router    /boards/{id}/share [post]
func (h *BoardHandler) Share(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	var req ShareBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.Share(c.Request.Context(), userID, pathID(c, "id"), req.UserEmail)
	h.respondBoard(c, http.StatusOK, board, err)
}

func (h *BoardHandler) respondBoard(c *gin.Context, status int, board *model.Board, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp, err := h.presenter.one(c.Request.Context(), board)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(status, resp)
}

func (h *BoardHandler) respondList(c *gin.Context, boards []model.Board, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp, err := h.presenter.many(c.Request.Context(), boards)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
