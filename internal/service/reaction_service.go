package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// ReactionService executes reaction requests against the ledger.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
}

// NewReactionService creates a new ReactionService.
func NewReactionService(reactionRepo repository.ReactionRepository) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo}
}

// ReactInput carries one reaction request.
type ReactInput struct {
	ActorID   uint
	CommentID uint
	Kind      models.ReactionKind
}

// React applies one state-machine transition for (actor, comment). Blocked
// transitions are not errors; the caller redirects back either way.
func (s *ReactionService) React(ctx context.Context, in ReactInput) (repository.ReactionOutcome, error) {
	if !in.Kind.Valid() {
		return "", models.NewValidationError("Unknown reaction kind")
	}

	outcome, err := s.reactionRepo.Apply(ctx, in.ActorID, in.CommentID, in.Kind)
	if err != nil {
		return "", err
	}

	observability.ReactionTransitions.WithLabelValues(string(in.Kind), string(outcome)).Inc()
	return outcome, nil
}
