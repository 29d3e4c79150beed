package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// MaxCommentLen caps comment bodies.
const MaxCommentLen = 10000

// CommentService handles comment creation and editing.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CreateCommentInput carries the comment form fields.
type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Body     string
}

// CreateComment attaches a new comment to an existing post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Comment cannot be empty")
	}
	if len(body) > MaxCommentLen {
		return nil, models.NewValidationError("Comment is too long")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: in.AuthorID,
		Body:   body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment returns one comment with its author loaded.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListByPost returns a post's comments oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// UpdateCommentInput carries the comment edit form fields.
type UpdateCommentInput struct {
	ActorID   uint
	CommentID uint
	Body      string
}

// UpdateComment replaces a comment's body. Only the comment's author may
// edit it; anyone else gets a Forbidden error.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.ActorID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Comment cannot be empty")
	}
	if len(body) > MaxCommentLen {
		return nil, models.NewValidationError("Comment is too long")
	}

	if err := s.commentRepo.UpdateBody(ctx, in.CommentID, body); err != nil {
		return nil, err
	}
	comment.Body = body
	return comment, nil
}
