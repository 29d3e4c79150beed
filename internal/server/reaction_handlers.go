package server

import (
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HandleReaction applies one like/dislike transition and returns to the
// comment's anchor on the post page. A blocked transition redirects the same
// way; the page simply shows unchanged counters.
func (s *Server) HandleReaction(c *fiber.Ctx) error {
	commentID, err := paramUint(c, "commentID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Comment not found")
	}
	commenterID, err := paramUint(c, "commenterID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "User not found")
	}
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}

	ident := identityFrom(c)
	// The URL names the reacting user, but the session decides who acts.
	if commenterID != ident.UserID {
		return s.renderErrorPage(c, fiber.StatusForbidden, "You can only react as yourself")
	}

	outcome, err := s.reactionService.React(c.UserContext(), service.ReactInput{
		ActorID:   ident.UserID,
		CommentID: commentID,
		Kind:      models.ReactionKind(c.Params("reaction")),
	})
	if err != nil {
		return s.failAndRedirect(c, err, fmt.Sprintf("/post/%d", postID))
	}

	middleware.Logger.InfoContext(c.UserContext(), "reaction applied",
		"comment_id", commentID, "kind", c.Params("reaction"), "outcome", string(outcome))
	return c.Redirect(fmt.Sprintf("/post/%d#com%d", postID, commentID), fiber.StatusSeeOther)
}
