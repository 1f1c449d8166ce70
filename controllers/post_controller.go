package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marianaakuma/Projeto-Full-Stack1/apperror"
	"github.com/marianaakuma/Projeto-Full-Stack1/models"
	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

// PostController manages CRUD operations for posts. Listing is public; every
// single-item operation, reads included, is private to the post's owner.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

type postRequest struct {
	Title   string `json:"title" binding:"required,min=1"`
	Content string `json:"content" binding:"required"`
}

// CreatePost allows authenticated users to create new posts. The author field
// snapshots the caller's username at creation time.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40020, apperror.NewValidationError("title and content are required"))
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Fail(ctx, 40021, apperror.NewValidationError("title cannot be empty"))
		return
	}
	content := utils.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		utils.Fail(ctx, 40022, apperror.NewValidationError("content cannot be empty"))
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Fail(ctx, 40110, apperror.NewAuthError("unauthorized", nil))
		return
	}

	post := models.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
		Author:  getUsername(ctx),
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Fail(ctx, 50020, apperror.NewDatabaseError("failed to create post", err))
		return
	}

	utils.Created(ctx, gin.H{"post": post})
}

// ListPosts returns every post, newest first. Intentionally public and
// unrestricted, in contrast with the owner-gated single-item fetch.
func (p *PostController) ListPosts(ctx *gin.Context) {
	var posts []models.Post
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Fail(ctx, 50021, apperror.NewDatabaseError("failed to list posts", err))
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// GetPost returns a single post to its owner only.
func (p *PostController) GetPost(ctx *gin.Context) {
	post, err := p.loadOwnedPost(ctx)
	if err != nil {
		utils.Fail(ctx, 40401, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost allows the owner to replace the post's title and content.
// Partial updates are not supported; both fields are required.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40024, apperror.NewValidationError("title and content are required"))
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Fail(ctx, 40025, apperror.NewValidationError("title cannot be empty"))
		return
	}
	content := utils.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		utils.Fail(ctx, 40026, apperror.NewValidationError("content cannot be empty"))
		return
	}

	post, err := p.loadOwnedPost(ctx)
	if err != nil {
		utils.Fail(ctx, 40403, err)
		return
	}

	post.Title = title
	post.Content = content
	if err := p.db.Save(&post).Error; err != nil {
		utils.Fail(ctx, 50026, apperror.NewDatabaseError("failed to update post", err))
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the owner to delete their post. The post's comments go
// with it in the same transaction, so a failure leaves nothing half-deleted.
func (p *PostController) DeletePost(ctx *gin.Context) {
	post, err := p.loadOwnedPost(ctx)
	if err != nil {
		utils.Fail(ctx, 40404, err)
		return
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		utils.Fail(ctx, 50028, apperror.NewDatabaseError("failed to delete post", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// loadOwnedPost resolves the :id path parameter and enforces the ownership
// check shared by get, update, and delete.
func (p *PostController) loadOwnedPost(ctx *gin.Context) (models.Post, error) {
	postID := ctx.Param("id")
	var post models.Post
	if err := p.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, apperror.NewNotFoundError("post not found")
		}
		return post, apperror.NewDatabaseError("failed to load post", err)
	}

	userID, ok := getUserID(ctx)
	if !ok {
		return post, apperror.NewAuthError("unauthorized", nil)
	}
	if post.UserID != userID {
		return post, apperror.NewUnauthorizedError("you do not own this post")
	}
	return post, nil
}
