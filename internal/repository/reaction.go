package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionOutcome is the result of applying a reaction request to the ledger.
type ReactionOutcome string

const (
	// OutcomeCreated means a new reaction row was created and the matching
	// counter was incremented.
	OutcomeCreated ReactionOutcome = "created"
	// OutcomeRetracted means an existing reaction of the same kind was
	// deleted and the matching counter was decremented.
	OutcomeRetracted ReactionOutcome = "retracted"
	// OutcomeBlocked means an existing reaction of the opposite kind blocked
	// the request; nothing changed.
	OutcomeBlocked ReactionOutcome = "blocked"
)

// ReactionRepository owns the reaction ledger. Apply is the only mutation:
// the whole check-then-write transition runs in a single transaction so the
// comment counters can never drift from the reaction rows.
type ReactionRepository interface {
	Apply(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (ReactionOutcome, error)
	Get(ctx context.Context, userID, commentID uint) (*models.Reaction, error)
	CountByComment(ctx context.Context, commentID uint, kind models.ReactionKind) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Apply executes one transition of the per-(user, comment) reaction state
// machine:
//
//	none     + kind          -> create row, counter += 1   (created)
//	same     + kind          -> delete row, counter -= 1   (retracted)
//	opposite + kind          -> no change                  (blocked)
//
// The comment row is locked for the duration of the transaction, which
// serializes concurrent transitions on the same comment and keeps the
// counters equal to the row counts.
func (r *reactionRepository) Apply(ctx context.Context, userID, commentID uint, kind models.ReactionKind) (ReactionOutcome, error) {
	var outcome ReactionOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite has no FOR UPDATE; its writer lock serializes instead.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var comment models.Comment
		if err := q.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", commentID)
			}
			return err
		}

		var existing models.Reaction
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{
				UserID:    userID,
				CommentID: commentID,
				Liked:     kind == models.ReactionLike,
				Disliked:  kind == models.ReactionDislike,
			}
			if createErr := tx.Create(&reaction).Error; createErr != nil {
				if isUniqueViolation(createErr, "user_comment") {
					// Lost a race with another request from the same user;
					// treat it like the opposite-kind block and change nothing.
					outcome = OutcomeBlocked
					return nil
				}
				return createErr
			}
			if updErr := bumpCounter(tx, commentID, kind, +1); updErr != nil {
				return updErr
			}
			outcome = OutcomeCreated

		case err != nil:
			return err

		case existing.Kind() == kind:
			if delErr := tx.Delete(&models.Reaction{}, existing.ID).Error; delErr != nil {
				return delErr
			}
			if updErr := bumpCounter(tx, commentID, kind, -1); updErr != nil {
				return updErr
			}
			outcome = OutcomeRetracted

		default:
			// An existing reaction of the opposite kind blocks the request
			// until the user retracts it.
			outcome = OutcomeBlocked
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func bumpCounter(tx *gorm.DB, commentID uint, kind models.ReactionKind, delta int) error {
	column := "likes"
	if kind == models.ReactionDislike {
		column = "dislikes"
	}
	return tx.Model(&models.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *reactionRepository) Get(ctx context.Context, userID, commentID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).Where("user_id = ? AND comment_id = ?", userID, commentID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) CountByComment(ctx context.Context, commentID uint, kind models.ReactionKind) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Reaction{}).Where("comment_id = ?", commentID)
	if kind == models.ReactionLike {
		q = q.Where("liked = ?", true)
	} else {
		q = q.Where("disliked = ?", true)
	}
	err := q.Count(&count).Error
	return count, err
}
