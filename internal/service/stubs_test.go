package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
	countFn         func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

type stubPostRepo struct {
	createFn     func(ctx context.Context, post *models.Post) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Post, error)
	listFn       func(ctx context.Context) ([]*models.Post, error)
	updateFn     func(ctx context.Context, post *models.Post) error
	titleTakenFn func(ctx context.Context, title string, excludeID uint) (bool, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPostRepo) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}

func (s *stubPostRepo) TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error) {
	return s.titleTakenFn(ctx, title, excludeID)
}

type stubCommentRepo struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn func(ctx context.Context, postID uint) ([]*models.Comment, error)
	updateBodyFn func(ctx context.Context, id uint, body string) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func (s *stubCommentRepo) UpdateBody(ctx context.Context, id uint, body string) error {
	return s.updateBodyFn(ctx, id, body)
}

type stubReactionRepo struct {
	applyFn func(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (repository.ReactionOutcome, error)
}

func (s *stubReactionRepo) Apply(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (repository.ReactionOutcome, error) {
	return s.applyFn(ctx, userID, commentID, kind)
}

func (s *stubReactionRepo) Get(ctx context.Context, userID, commentID uint) (*models.Reaction, error) {
	return nil, nil
}

func (s *stubReactionRepo) CountByComment(ctx context.Context, commentID uint, kind models.ReactionKind) (int64, error) {
	return 0, nil
}
