package server

import (
	"peached/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /v0/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body object{content=string} true "Post"
// @Success 201 {object} object{success=bool,post=models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return ok(c, fiber.Map{"post": post})
}

// GetUserPosts handles GET /v0/posts/user/:username
// @Summary Posts by user
// @Description Newest first
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool,posts=[]models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/user/{username} [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListByUsername(c.UserContext(), c.Params("username"), postListLimit, 0)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return ok(c, fiber.Map{"posts": posts})
}

// DeletePost handles DELETE /v0/posts/:id
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return nil
	}
	if err := s.postService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}
