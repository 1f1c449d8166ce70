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

// CommentController manages CRUD operations for comments. Any authenticated
// caller may read a post's comments; only a comment's own author may change
// or delete it — the post's owner gets no special rights over it.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListComments returns all comments attached to an existing post.
func (c *CommentController) ListComments(ctx *gin.Context) {
	post, err := c.loadPost(ctx)
	if err != nil {
		utils.Fail(ctx, 40402, err)
		return
	}

	var comments []models.Comment
	if err := c.db.Where("post_id = ?", post.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.Fail(ctx, 50030, apperror.NewDatabaseError("failed to list comments", err))
		return
	}

	utils.Success(ctx, gin.H{"items": comments})
}

// CreateComment attaches a comment to an existing post. The parent post must
// exist before anything is persisted.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	post, err := c.loadPost(ctx)
	if err != nil {
		utils.Fail(ctx, 40405, err)
		return
	}

	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40030, apperror.NewValidationError("content is required"))
		return
	}

	content := utils.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		utils.Fail(ctx, 40031, apperror.NewValidationError("content cannot be empty"))
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Fail(ctx, 40110, apperror.NewAuthError("unauthorized", nil))
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: content,
	}

	if err := c.db.Create(&comment).Error; err != nil {
		utils.Fail(ctx, 50031, apperror.NewDatabaseError("failed to create comment", err))
		return
	}

	utils.Created(ctx, gin.H{"comment": comment})
}

// UpdateComment allows the comment's author to replace its content.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, 40032, apperror.NewValidationError("content is required"))
		return
	}

	content := utils.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		utils.Fail(ctx, 40033, apperror.NewValidationError("content cannot be empty"))
		return
	}

	comment, err := c.loadOwnedComment(ctx)
	if err != nil {
		utils.Fail(ctx, 40420, err)
		return
	}

	comment.Content = content
	if err := c.db.Save(&comment).Error; err != nil {
		utils.Fail(ctx, 50032, apperror.NewDatabaseError("failed to update comment", err))
		return
	}

	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment allows the comment's author to delete it.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	comment, err := c.loadOwnedComment(ctx)
	if err != nil {
		utils.Fail(ctx, 40421, err)
		return
	}

	if err := c.db.Delete(&comment).Error; err != nil {
		utils.Fail(ctx, 50033, apperror.NewDatabaseError("failed to delete comment", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// loadPost resolves the :postId path parameter against the store.
func (c *CommentController) loadPost(ctx *gin.Context) (models.Post, error) {
	postID := ctx.Param("postId")
	var post models.Post
	if err := c.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, apperror.NewNotFoundError("post not found")
		}
		return post, apperror.NewDatabaseError("failed to load post", err)
	}
	return post, nil
}

// loadOwnedComment resolves :postId/:commentId and enforces that the caller
// authored the comment. Ownership is checked against the comment's owner, not
// the post's.
func (c *CommentController) loadOwnedComment(ctx *gin.Context) (models.Comment, error) {
	commentID := ctx.Param("commentId")
	var comment models.Comment
	if err := c.db.First(&comment, "id = ? AND post_id = ?", commentID, ctx.Param("postId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return comment, apperror.NewNotFoundError("comment not found")
		}
		return comment, apperror.NewDatabaseError("failed to load comment", err)
	}

	userID, ok := getUserID(ctx)
	if !ok {
		return comment, apperror.NewAuthError("unauthorized", nil)
	}
	if comment.UserID != userID {
		return comment, apperror.NewUnauthorizedError("you do not own this comment")
	}
	return comment, nil
}
