package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionService_React(t *testing.T) {
	tests := []struct {
		name        string
		kind        models.ReactionKind
		repoOutcome repository.ReactionOutcome
		want        repository.ReactionOutcome
		wantErrCode string
	}{
		{
			name:        "First Like Is Created",
			kind:        models.ReactionLike,
			repoOutcome: repository.OutcomeCreated,
			want:        repository.OutcomeCreated,
		},
		{
			name:        "Second Like Is Retracted",
			kind:        models.ReactionLike,
			repoOutcome: repository.OutcomeRetracted,
			want:        repository.OutcomeRetracted,
		},
		{
			name:        "Dislike On Liked Comment Is Blocked",
			kind:        models.ReactionDislike,
			repoOutcome: repository.OutcomeBlocked,
			want:        repository.OutcomeBlocked,
		},
		{
			name:        "Unknown Kind Is Rejected",
			kind:        models.ReactionKind("love"),
			wantErrCode: models.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubReactionRepo{
				applyFn: func(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (repository.ReactionOutcome, error) {
					assert.Equal(t, uint(7), userID)
					assert.Equal(t, uint(42), commentID)
					return tt.repoOutcome, nil
				},
			}
			svc := NewReactionService(repo)

			outcome, err := svc.React(context.Background(), ReactInput{ActorID: 7, CommentID: 42, Kind: tt.kind})
			if tt.wantErrCode != "" {
				require.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErrCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestReactionService_React_MissingComment(t *testing.T) {
	repo := &stubReactionRepo{
		applyFn: func(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (repository.ReactionOutcome, error) {
			return "", models.NewNotFoundError("Comment", commentID)
		},
	}
	svc := NewReactionService(repo)

	_, err := svc.React(context.Background(), ReactInput{ActorID: 1, CommentID: 999, Kind: models.ReactionLike})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
