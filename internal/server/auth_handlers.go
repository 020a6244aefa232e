package server

import (
	"peached/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /v0/users/register
// @Summary Register
// @Description Create an identity and return its first token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.Registration true "Registration"
// @Success 200 {object} object{success=bool,user=models.AccountSummary,token=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /users/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req validation.Registration
	if !parseBody(c, &req) {
		return nil
	}

	result, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"user": result.User, "token": result.Token})
}

// Login handles POST /v0/auth
// @Summary Log in
// @Description Exchange a username and password for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,user=models.AccountSummary,token=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	result, err := s.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"user": result.User, "token": result.Token})
}

// GetAuthUser handles GET /v0/auth/user
// @Summary Current identity
// @Description Read the caller's identity fresh from the store
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/user [get]
func (s *Server) GetAuthUser(c *fiber.Ctx) error {
	user, err := s.authService.CurrentUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"user": user})
}

// ChangePassword handles POST /v0/account/password
// @Summary Change password
// @Description Store a new password and return a token bound to it
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body object{password=string} true "New password"
// @Success 200 {object} object{success=bool,token=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /account/password [post]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	token, err := s.authService.ChangePassword(c.UserContext(), currentUserID(c), req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"token": token})
}
