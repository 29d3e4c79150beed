package server

import (
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ShowPost renders one post with its comments and the comment form.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return s.failAndRedirect(c, err, "/")
	}

	comments, err := s.commentService.ListByPost(c.UserContext(), postID)
	if err != nil {
		return s.failAndRedirect(c, err, "/")
	}

	return s.render(c, "post", fiber.Map{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
	})
}

// CreateComment adds a comment to the post and returns to its anchor.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}
	ident := identityFrom(c)

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		AuthorID: ident.UserID,
		PostID:   postID,
		Body:     c.FormValue("comment"),
	})
	if err != nil {
		return s.failAndRedirect(c, err, fmt.Sprintf("/post/%d", postID))
	}

	middleware.Logger.InfoContext(c.UserContext(), "comment created", "comment_id", comment.ID, "post_id", postID)
	return c.Redirect(fmt.Sprintf("/post/%d#com%d", postID, comment.ID), fiber.StatusSeeOther)
}

// NewPostForm renders the post authoring page.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	return s.render(c, "new-post", fiber.Map{"Title": "New Post"})
}

// NewPost publishes a new post.
func (s *Server) NewPost(c *fiber.Ctx) error {
	ident := identityFrom(c)

	post, err := s.postService.CreatePost(c.UserContext(), service.PostInput{
		AuthorID: ident.UserID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("img_url"),
	})
	if err != nil {
		return s.failAndRedirect(c, err, "/new-post")
	}

	middleware.Logger.InfoContext(c.UserContext(), "post published", "post_id", post.ID, "title", post.Title)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostForm renders the authoring page prefilled with the post.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return s.failAndRedirect(c, err, "/")
	}

	return s.render(c, "new-post", fiber.Map{
		"Title":   "Edit Post",
		"Post":    post,
		"Editing": true,
	})
}

// EditPost replaces every editable field of the post.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "Post not found")
	}
	ident := identityFrom(c)

	post, err := s.postService.UpdatePost(c.UserContext(), postID, service.PostInput{
		AuthorID: ident.UserID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("img_url"),
	})
	if err != nil {
		return s.failAndRedirect(c, err, fmt.Sprintf("/edit-post/%d", postID))
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}
