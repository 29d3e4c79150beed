package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// publishedOnLayout renders dates like "September 01, 2026".
const publishedOnLayout = "January 02, 2006"

// PostService handles post authoring. Route guards restrict these operations
// to the admin; the service only enforces content rules.
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

// PostInput carries the post authoring form fields.
type PostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

func (in PostInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > 250 {
		return models.NewValidationError("Title must be at most 250 characters")
	}
	if strings.TrimSpace(in.Body) == "" {
		return models.NewValidationError("Body is required")
	}
	return nil
}

// CreatePost publishes a new post stamped with the current date.
func (s *PostService) CreatePost(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	taken, err := s.postRepo.TitleTaken(ctx, in.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("A post with this title already exists")
	}

	post := &models.Post{
		UserID:      in.AuthorID,
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Body:        in.Body,
		ImageURL:    in.ImageURL,
		PublishedOn: s.now().Format(publishedOnLayout),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns one post with its author loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns all posts newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// UpdatePost replaces every editable field of an existing post and restamps
// the displayed publication date.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.postRepo.TitleTaken(ctx, in.Title, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("A post with this title already exists")
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL
	post.PublishedOn = s.now().Format(publishedOnLayout)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
