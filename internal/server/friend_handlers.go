package server

import (
	"peached/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /v0/friends
// @Summary Friends list
// @Description Active identities the caller has added
// @Tags friends
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,friends=[]models.FriendSummary}
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if friends == nil {
		friends = []models.FriendSummary{}
	}
	return ok(c, fiber.Map{"friends": friends})
}

// AddFriend handles POST /v0/friends/:username
// @Summary Add friend
// @Tags friends
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{username} [post]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	if err := s.friendService.Add(c.UserContext(), currentUserID(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}

// RemoveFriend handles DELETE /v0/friends/:username
// @Summary Remove friend
// @Tags friends
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{username} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	if err := s.friendService.Remove(c.UserContext(), currentUserID(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}
