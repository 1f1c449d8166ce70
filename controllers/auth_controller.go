package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marianaakuma/Projeto-Full-Stack1/apperror"
	"github.com/marianaakuma/Projeto-Full-Stack1/config"
	"github.com/marianaakuma/Projeto-Full-Stack1/middleware"
	"github.com/marianaakuma/Projeto-Full-Stack1/models"
	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

// AuthController handles registration, credential verification, and the token lifecycle.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register handles local account registration with bcrypt hashing.
// Username and email must both be unique; only the hash is ever persisted.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required,min=2,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40001, apperror.NewValidationError("username, email and password are required"))
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		utils.Fail(ctx, 40002, apperror.NewValidationError("username cannot be empty"))
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.Fail(ctx, 40901, apperror.NewConflictError("username already exists"))
		return
	}
	if err := a.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Fail(ctx, 40902, apperror.NewConflictError("email already exists"))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Fail(ctx, 50001, apperror.NewInternalError("failed to hash password", err))
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := a.db.Create(&user).Error; err != nil {
		// Unique indexes back up the pre-checks; a racing duplicate lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(ctx, 40903, apperror.NewConflictError("username or email already exists"))
			return
		}
		utils.Fail(ctx, 50002, apperror.NewDatabaseError("failed to create user", err))
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		utils.Fail(ctx, 50003, apperror.NewInternalError("failed to generate token", err))
		return
	}

	utils.Created(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login verifies user credentials and issues a JWT. Unknown email and wrong
// password are indistinguishable to the caller.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40003, apperror.NewValidationError("email and password are required"))
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", strings.TrimSpace(req.Email)).First(&user).Error; err != nil {
		utils.Fail(ctx, 40106, apperror.NewAuthError("invalid credentials", nil))
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Fail(ctx, 40106, apperror.NewAuthError("invalid credentials", nil))
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		utils.Fail(ctx, 50004, apperror.NewInternalError("failed to generate token", err))
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout invalidates the presented token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(time.Duration(config.Get().TokenTTLHours) * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's record.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Fail(ctx, 40110, apperror.NewAuthError("unauthorized", nil))
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, 40410, apperror.NewNotFoundError("user not found"))
			return
		}
		utils.Fail(ctx, 50005, apperror.NewDatabaseError("failed to load user", err))
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}

func (a *AuthController) issueToken(user models.User) (string, error) {
	ttl := time.Duration(config.Get().TokenTTLHours) * time.Hour
	return utils.GenerateToken(user.ID, user.Username, ttl)
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func getUsername(ctx *gin.Context) string {
	value, exists := ctx.Get(middleware.ContextUsernameKey)
	if !exists {
		return ""
	}
	username, _ := value.(string)
	return username
}
