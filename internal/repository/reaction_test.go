package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func commentCounters(t *testing.T, db *gorm.DB, commentID uint) (int, int) {
	t.Helper()
	var comment models.Comment
	require.NoError(t, db.First(&comment, commentID).Error)
	return comment.Likes, comment.Dislikes
}

func TestReactionRepository_Apply(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*gorm.DB, ReactionRepository, *models.User, *models.Comment) {
		db := setupTestDB(t)
		author := createUser(t, db, "author", "author@e.com")
		reader := createUser(t, db, "reader", "reader@e.com")
		post := createPost(t, db, author.ID, "A Post")
		comment := createComment(t, db, post.ID, author.ID, "first")
		return db, NewReactionRepository(db), reader, comment
	}

	t.Run("First Like Creates Row And Bumps Counter", func(t *testing.T) {
		db, repo, reader, comment := setup(t)

		outcome, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)

		likes, dislikes := commentCounters(t, db, comment.ID)
		assert.Equal(t, 1, likes)
		assert.Equal(t, 0, dislikes)

		stored, err := repo.Get(ctx, reader.ID, comment.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.ReactionLike, stored.Kind())
	})

	t.Run("Second Like Retracts", func(t *testing.T) {
		db, repo, reader, comment := setup(t)

		_, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		outcome, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, OutcomeRetracted, outcome)

		likes, _ := commentCounters(t, db, comment.ID)
		assert.Equal(t, 0, likes)

		stored, err := repo.Get(ctx, reader.ID, comment.ID)
		require.NoError(t, err)
		assert.Nil(t, stored, "retraction removes the row")
	})

	t.Run("Opposite Kind Is Blocked", func(t *testing.T) {
		db, repo, reader, comment := setup(t)

		_, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		outcome, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, OutcomeBlocked, outcome)

		likes, dislikes := commentCounters(t, db, comment.ID)
		assert.Equal(t, 1, likes, "blocked transition leaves counters untouched")
		assert.Equal(t, 0, dislikes)

		stored, err := repo.Get(ctx, reader.ID, comment.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.ReactionLike, stored.Kind(), "the original reaction survives")
	})

	t.Run("Retract Then Switch Polarity", func(t *testing.T) {
		db, repo, reader, comment := setup(t)

		_, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		_, err = repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		outcome, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)

		likes, dislikes := commentCounters(t, db, comment.ID)
		assert.Equal(t, 0, likes)
		assert.Equal(t, 1, dislikes)
	})

	t.Run("Different Users React Independently", func(t *testing.T) {
		db, repo, reader, comment := setup(t)
		other := createUser(t, db, "other", "other@e.com")

		_, err := repo.Apply(ctx, reader.ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		outcome, err := repo.Apply(ctx, other.ID, comment.ID, models.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome, "another user's like does not block my dislike")

		likes, dislikes := commentCounters(t, db, comment.ID)
		assert.Equal(t, 1, likes)
		assert.Equal(t, 1, dislikes)
	})

	t.Run("Counters Match Row Counts", func(t *testing.T) {
		db, repo, reader, comment := setup(t)
		users := []*models.User{reader}
		for _, name := range []string{"u2", "u3", "u4"} {
			users = append(users, createUser(t, db, name, name+"@e.com"))
		}

		kinds := []models.ReactionKind{models.ReactionLike, models.ReactionDislike, models.ReactionLike, models.ReactionLike}
		for i, u := range users {
			_, err := repo.Apply(ctx, u.ID, comment.ID, kinds[i])
			require.NoError(t, err)
		}
		// One user toggles off again.
		_, err := repo.Apply(ctx, users[2].ID, comment.ID, models.ReactionLike)
		require.NoError(t, err)

		likes, dislikes := commentCounters(t, db, comment.ID)
		likeRows, err := repo.CountByComment(ctx, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		dislikeRows, err := repo.CountByComment(ctx, comment.ID, models.ReactionDislike)
		require.NoError(t, err)

		assert.Equal(t, int64(likes), likeRows)
		assert.Equal(t, int64(dislikes), dislikeRows)
	})

	t.Run("Concurrent Toggles Keep Counters Equal To Rows", func(t *testing.T) {
		db, repo, reader, comment := setup(t)

		// Every new sqlite connection gets its own :memory: database, so the
		// pool is pinned to one connection; goroutines then serialize on it
		// the way postgres serializes on the row lock.
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.SetMaxOpenConns(1)

		users := []*models.User{reader}
		for i := 0; i < 4; i++ {
			name := fmt.Sprintf("r%d", i)
			users = append(users, createUser(t, db, name, name+"@e.com"))
		}

		var wg sync.WaitGroup
		for _, u := range users {
			for i := 0; i < 5; i++ {
				wg.Add(1)
				go func(userID uint, i int) {
					defer wg.Done()
					kind := models.ReactionLike
					if i%2 == 1 {
						kind = models.ReactionDislike
					}
					_, applyErr := repo.Apply(ctx, userID, comment.ID, kind)
					assert.NoError(t, applyErr)
				}(u.ID, i)
			}
		}
		wg.Wait()

		likes, dislikes := commentCounters(t, db, comment.ID)
		likeRows, err := repo.CountByComment(ctx, comment.ID, models.ReactionLike)
		require.NoError(t, err)
		dislikeRows, err := repo.CountByComment(ctx, comment.ID, models.ReactionDislike)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, likes, 0)
		assert.GreaterOrEqual(t, dislikes, 0)
		assert.Equal(t, int64(likes), likeRows)
		assert.Equal(t, int64(dislikes), dislikeRows)
	})

	t.Run("Missing Comment", func(t *testing.T) {
		_, repo, reader, _ := setup(t)

		_, err := repo.Apply(ctx, reader.ID, 9999, models.ReactionLike)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
