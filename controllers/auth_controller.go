package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-plantcare/config"
	"go-plantcare/middleware"
	"go-plantcare/models"
	"go-plantcare/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	DB       *sql.DB
	Secret   string
	TokenTTL time.Duration
	Log      *zap.SugaredLogger
	Now      func() time.Time
}

// NewAuthController creates a new AuthController.
func NewAuthController(db *sql.DB, secret string, ttl time.Duration, log *zap.SugaredLogger) *AuthController {
	return &AuthController{DB: db, Secret: secret, TokenTTL: ttl, Log: log, Now: time.Now}
}

// Credentials is the register and login request body.
type Credentials struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   int    `json:"userId"`
}

// Register creates a user and returns a token. The UNIQUE index on
// username decides between concurrent registrations of the same name.
func (c *AuthController) Register(ctx *gin.Context) {
	var req Credentials
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, bindError(err))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(ctx, fmt.Errorf("hash password: %w", err))
		return
	}

	result, err := c.DB.ExecContext(ctx.Request.Context(),
		"INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)",
		req.Username, string(hashedPassword), utils.FormatTime(c.Now()),
	)
	if config.IsUniqueViolation(err) {
		utils.Error(ctx, fmt.Errorf("%w: username %q", models.ErrConflict, req.Username))
		return
	}
	if err != nil {
		utils.Error(ctx, fmt.Errorf("insert user: %w", err))
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		utils.Error(ctx, fmt.Errorf("read user id: %w", err))
		return
	}

	c.respondWithToken(ctx, http.StatusCreated, int(userID), req.Username)
}

// Login checks credentials and returns a token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req Credentials
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, bindError(err))
		return
	}

	var user models.User
	err := c.DB.QueryRowContext(ctx.Request.Context(),
		"SELECT id, username, password FROM users WHERE username = ?",
		req.Username,
	).Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Error(ctx, models.ErrUnauthorized)
		return
	}
	if err != nil {
		utils.Error(ctx, fmt.Errorf("lookup user: %w", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Error(ctx, models.ErrUnauthorized)
		return
	}

	c.respondWithToken(ctx, http.StatusOK, user.ID, user.Username)
}

// respondWithToken signs a token for the user and writes it with status.
func (c *AuthController) respondWithToken(ctx *gin.Context, status int, userID int, username string) {
	token, err := middleware.GenerateToken(c.Secret, userID, c.TokenTTL)
	if err != nil {
		utils.Error(ctx, fmt.Errorf("sign token: %w", err))
		return
	}

	c.Log.Infow("user authenticated", "user_id", userID, "username", username)
	ctx.JSON(status, utils.Response{
		Code:    status,
		Message: "success",
		Data: AuthResponse{
			Token:    token,
			Username: username,
			UserID:   userID,
		},
	})
}
