package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type UserHandler struct {
	repo   repository.UserRepositoryInterface
	tokens TokenIssuer
	logger *log.Logger
}

func NewUserHandler(repo repository.UserRepositoryInterface, tokens TokenIssuer, logger *log.Logger) *UserHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &UserHandler{repo: repo, tokens: tokens, logger: logger}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates an account and returns a token for it
// @Summary  Register a new user
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body RegisterRequest true "Account details"
// @Success  201 {object} AuthResponse
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if utf8.RuneCountInString(req.Username) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if existing != nil {
		respondEmailTaken(c)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hash,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, repository.ErrEmailTaken) {
			respondEmailTaken(c)
			return
		}
		respondError(c, h.logger, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login exchanges credentials for a token
// @Summary  Log in
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request body LoginRequest true "Credentials"
// @Success  200 {object} AuthResponse
// @Failure  401 {object} map[string]string
// @Router   /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Me returns the authenticated user's profile
// @Summary   Current user
// @Tags      Users
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} map[string]UserResponse
// @Failure   401 {object} map[string]string
// @Router    /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := actorID(c, h.logger)
	if !ok {
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if user == nil {
		respondError(c, h.logger, service.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func respondEmailTaken(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.tokens.GenerateToken(user.ID.String())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(status, AuthResponse{Token: token, User: newUserResponse(user)})
}
