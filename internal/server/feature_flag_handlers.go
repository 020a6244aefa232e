package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags handles GET /v0/feature_flags
// @Summary Feature flags
// @Description Configured rollouts and their evaluation for the caller
// @Tags account
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,raw=map[string]string,evaluated=map[string]bool}
// @Router /feature_flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := currentUserID(c)
	raw := s.featureFlags.Raw()

	evaluated := make(map[string]bool, len(raw))
	for name := range raw {
		evaluated[name] = s.featureFlags.Enabled(name, userID)
	}
	return ok(c, fiber.Map{"raw": raw, "evaluated": evaluated})
}
