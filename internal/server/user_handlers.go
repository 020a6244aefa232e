package server

import (
	"peached/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSelf handles GET /v0/users/self
// @Summary Own profile
// @Description The caller's profile with blocked words and friend ids
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,user=models.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/self [get]
func (s *Server) GetSelf(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"user": currentProfile(c)})
}

// LookupUser handles GET /v0/users/lookup/:username
// @Summary Look up a user
// @Description Public fields of an active identity
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool,user=models.PublicProfile}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/lookup/{username} [get]
func (s *Server) LookupUser(c *fiber.Ctx) error {
	user, err := s.accountService.Lookup(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// DeactivateAccount handles DELETE /v0/users
// @Summary Deactivate account
// @Description Retire the caller: prune friends' references, delete posts, set the flag
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,prune_failures=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /users [delete]
func (s *Server) DeactivateAccount(c *fiber.Ctx) error {
	result, err := s.deactivationService.Deactivate(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"prune_failures": result.PruneFailures})
}

// UpdateProfile handles POST /v0/account/update_profile
// @Summary Update profile
// @Description Change name, bio or url; omitted fields stay as they are
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} object{success=bool,newProfileInfo=service.ProfileChanges}
// @Failure 400 {object} models.ErrorResponse
// @Router /account/update_profile [post]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req service.ProfileUpdate
	if !parseBody(c, &req) {
		return nil
	}

	changes, err := s.accountService.UpdateProfile(c.UserContext(), currentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"newProfileInfo": changes})
}

// ChangeUsername handles POST /v0/account/username
// @Summary Change username
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body object{username=string} true "New username"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /account/username [post]
func (s *Server) ChangeUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	if err := s.accountService.ChangeUsername(c.UserContext(), currentUser(c), req.Username); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}

// UsernameAvailable handles GET /v0/account/username_available/:username
// @Summary Username availability
// @Tags account
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /account/username_available/{username} [get]
func (s *Server) UsernameAvailable(c *fiber.Ctx) error {
	if err := s.accountService.UsernameAvailable(c.UserContext(), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}

// EmailAvailable handles GET /v0/account/email_available/:email
// @Summary Email availability
// @Tags account
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /account/email_available/{email} [get]
func (s *Server) EmailAvailable(c *fiber.Ctx) error {
	if err := s.accountService.EmailAvailable(c.UserContext(), c.Params("email")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}

// GetBlockedWords handles GET /v0/account/blocked_words
// @Summary Blocked words
// @Tags account
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,blocked_words=[]string}
// @Router /account/blocked_words [get]
func (s *Server) GetBlockedWords(c *fiber.Ctx) error {
	words, err := s.accountService.BlockedWords(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if words == nil {
		words = []string{}
	}
	return ok(c, fiber.Map{"blocked_words": words})
}

// AddBlockedWord handles POST /v0/account/blocked_words
// @Summary Block a word
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body object{new_word=string} true "Word"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /account/blocked_words [post]
func (s *Server) AddBlockedWord(c *fiber.Ctx) error {
	var req struct {
		NewWord string `json:"new_word"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	if err := s.accountService.AddBlockedWord(c.UserContext(), currentUserID(c), req.NewWord); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}

// RemoveBlockedWord handles DELETE /v0/account/blocked_words
// @Summary Unblock a word
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body object{word=string} true "Word"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /account/blocked_words [delete]
func (s *Server) RemoveBlockedWord(c *fiber.Ctx) error {
	var req struct {
		Word string `json:"word"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	if err := s.accountService.RemoveBlockedWord(c.UserContext(), currentUserID(c), req.Word); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil)
}
