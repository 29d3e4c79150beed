package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowPost(t *testing.T) {
	repos := defaultRepos()
	repos.posts.getByIDFn = func(ctx context.Context, id uint) (*models.Post, error) {
		return &models.Post{
			ID:          id,
			Title:       "On Ledgers",
			Subtitle:    "Counting things",
			Body:        "Counters must match rows.",
			PublishedOn: "September 01, 2026",
			User:        models.User{ID: 1, Username: "admin"},
		}, nil
	}
	repos.comments.listByPostFn = func(ctx context.Context, postID uint) ([]*models.Comment, error) {
		return []*models.Comment{
			{ID: 2, PostID: postID, UserID: 7, Body: "great read", Likes: 3, User: models.User{ID: 7, Username: "ada"}},
		}, nil
	}
	s, app := newTestServer(t, repos)

	req := httptest.NewRequest(http.MethodGet, "/post/1", nil)
	req.Header.Set("Cookie", sessionCookie(t, s, 7, "ada"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "On Ledgers")
	assert.Contains(t, string(body), "great read")
	assert.Contains(t, string(body), `id="com2"`)
}

func TestShowPost_MissingPost(t *testing.T) {
	s, app := newTestServer(t, defaultRepos())

	req := httptest.NewRequest(http.MethodGet, "/post/99", nil)
	req.Header.Set("Cookie", sessionCookie(t, s, 7, "ada"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateComment(t *testing.T) {
	repos := defaultRepos()
	repos.posts.getByIDFn = func(ctx context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id}, nil
	}
	repos.comments.createFn = func(ctx context.Context, comment *models.Comment) error {
		comment.ID = 5
		return nil
	}
	s, app := newTestServer(t, repos)

	req := formRequest("/post/1", url.Values{"comment": {"nice work"}})
	req.Header.Set("Cookie", sessionCookie(t, s, 7, "ada"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/1#com5", redirectTarget(resp))
}

func TestNewPost_AdminGate(t *testing.T) {
	t.Run("Non Admin Is Forbidden", func(t *testing.T) {
		repos := defaultRepos()
		repos.users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "ada", IsAdmin: false}, nil
		}
		s, app := newTestServer(t, repos)

		req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
		req.Header.Set("Cookie", sessionCookie(t, s, 7, "ada"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Admin Publishes A Post", func(t *testing.T) {
		repos := defaultRepos()
		repos.users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "admin", IsAdmin: true}, nil
		}
		var created *models.Post
		repos.posts.createFn = func(ctx context.Context, post *models.Post) error {
			post.ID = 3
			created = post
			return nil
		}
		s, app := newTestServer(t, repos)

		req := formRequest("/new-post", url.Values{
			"title":    {"On Ledgers"},
			"subtitle": {"Counting things"},
			"body":     {"Counters must match rows."},
		})
		req.Header.Set("Cookie", sessionCookie(t, s, 1, "admin"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", redirectTarget(resp))
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.UserID)
		assert.NotEmpty(t, created.PublishedOn)
	})

	t.Run("Duplicate Title Redirects Back To Form", func(t *testing.T) {
		repos := defaultRepos()
		repos.users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "admin", IsAdmin: true}, nil
		}
		repos.posts.titleTakenFn = func(ctx context.Context, title string, excludeID uint) (bool, error) {
			return true, nil
		}
		s, app := newTestServer(t, repos)

		req := formRequest("/new-post", url.Values{
			"title": {"On Ledgers"},
			"body":  {"x"},
		})
		req.Header.Set("Cookie", sessionCookie(t, s, 1, "admin"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/new-post", redirectTarget(resp))
	})
}

func TestEditPost(t *testing.T) {
	repos := defaultRepos()
	repos.users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "admin", IsAdmin: true}, nil
	}
	repos.posts.getByIDFn = func(ctx context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Old", Body: "old", PublishedOn: "January 02, 2025"}, nil
	}
	var saved *models.Post
	repos.posts.updateFn = func(ctx context.Context, post *models.Post) error {
		saved = post
		return nil
	}
	s, app := newTestServer(t, repos)

	req := formRequest("/edit-post/4", url.Values{
		"title": {"New"},
		"body":  {"new body"},
	})
	req.Header.Set("Cookie", sessionCookie(t, s, 1, "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/4", redirectTarget(resp))
	require.NotNil(t, saved)
	assert.Equal(t, "New", saved.Title)
	assert.NotEqual(t, "January 02, 2025", saved.PublishedOn, "edits restamp the displayed date")
}
