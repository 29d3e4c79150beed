package server

import (
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// EditCommentForm renders the comment edit page for the comment's author.
func (s *Server) EditCommentForm(c *fiber.Ctx) error {
	commentID, err := paramUint(c, "commentID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Comment not found")
	}
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}

	comment, err := s.commentService.GetComment(c.UserContext(), commentID)
	if err != nil {
		return s.failAndRedirect(c, err, fmt.Sprintf("/post/%d", postID))
	}

	ident := identityFrom(c)
	if comment.UserID != ident.UserID {
		return s.renderErrorPage(c, fiber.StatusForbidden, "You can only edit your own comments")
	}

	return s.render(c, "edit-comment", fiber.Map{
		"Title":   "Edit Comment",
		"Comment": comment,
		"PostID":  postID,
	})
}

// EditComment replaces the comment body, author only.
func (s *Server) EditComment(c *fiber.Ctx) error {
	commentID, err := paramUint(c, "commentID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Comment not found")
	}
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}
	ident := identityFrom(c)

	_, err = s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		ActorID:   ident.UserID,
		CommentID: commentID,
		Body:      c.FormValue("comment"),
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
			return s.failAndRedirect(c, err, fmt.Sprintf("/edit-comment/%d/%d", commentID, postID))
		}
		return s.failAndRedirect(c, err, fmt.Sprintf("/post/%d", postID))
	}

	return c.Redirect(fmt.Sprintf("/post/%d#com%d", postID, commentID), fiber.StatusSeeOther)
}
