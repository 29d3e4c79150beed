package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/mail"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// Stub repositories with overridable behavior per test. Unset functions
// return empty results.

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type stubPostRepo struct {
	createFn     func(ctx context.Context, post *models.Post) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Post, error)
	listFn       func(ctx context.Context) ([]*models.Post, error)
	updateFn     func(ctx context.Context, post *models.Post) error
	titleTakenFn func(ctx context.Context, title string, excludeID uint) (bool, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (s *stubPostRepo) List(ctx context.Context) ([]*models.Post, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error) {
	if s.titleTakenFn != nil {
		return s.titleTakenFn(ctx, title, excludeID)
	}
	return false, nil
}

type stubCommentRepo struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn func(ctx context.Context, postID uint) ([]*models.Comment, error)
	updateBodyFn func(ctx context.Context, id uint, body string) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Comment", id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (s *stubCommentRepo) UpdateBody(ctx context.Context, id uint, body string) error {
	if s.updateBodyFn != nil {
		return s.updateBodyFn(ctx, id, body)
	}
	return nil
}

type stubReactionRepo struct {
	applyFn func(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (repository.ReactionOutcome, error)
}

func (s *stubReactionRepo) Apply(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (repository.ReactionOutcome, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, userID, commentID, kind)
	}
	return repository.OutcomeCreated, nil
}

func (s *stubReactionRepo) Get(ctx context.Context, userID, commentID uint) (*models.Reaction, error) {
	return nil, nil
}

func (s *stubReactionRepo) CountByComment(ctx context.Context, commentID uint, kind models.ReactionKind) (int64, error) {
	return 0, nil
}

type testRepos struct {
	users     *stubUserRepo
	posts     *stubPostRepo
	comments  *stubCommentRepo
	reactions *stubReactionRepo
}

func defaultRepos() *testRepos {
	return &testRepos{
		users:     &stubUserRepo{},
		posts:     &stubPostRepo{},
		comments:  &stubCommentRepo{},
		reactions: &stubReactionRepo{},
	}
}

// newTestServer wires a Server around stub repositories. No database, Redis,
// or Prometheus registration is involved.
func newTestServer(t *testing.T, repos *testRepos) (*Server, *fiber.App) {
	t.Helper()

	cfg := &config.Config{
		Port:          "8080",
		Env:           "test",
		SessionSecret: "test-secret-test-secret-test-secret",
		SessionTTL:    1,
	}

	s := &Server{
		config:       cfg,
		sessions:     session.NewManager(cfg.SessionSecret, time.Hour, nil),
		mailer:       mail.NoopMailer{},
		viewsDir:     "../../templates",
		userRepo:     repos.users,
		postRepo:     repos.posts,
		commentRepo:  repos.comments,
		reactionRepo: repos.reactions,
	}
	s.userService = service.NewUserService(repos.users)
	s.postService = service.NewPostService(repos.posts)
	s.commentService = service.NewCommentService(repos.comments, repos.posts)
	s.reactionService = service.NewReactionService(repos.reactions)

	return s, s.newApp()
}

// sessionCookie issues a valid session token for the given user and formats
// it as a Cookie header value.
func sessionCookie(t *testing.T, s *Server, userID uint, username string) string {
	t.Helper()
	token, err := s.sessions.Issue(userID, username)
	require.NoError(t, err)
	return session.CookieName + "=" + token
}

// formRequest builds a POST request with URL-encoded form values.
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// redirectTarget returns the Location header of a redirect response.
func redirectTarget(resp *http.Response) string {
	return resp.Header.Get("Location")
}
