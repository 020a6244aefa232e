package server

import (
	"log/slog"

	"peached/internal/middleware"
	"peached/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Fiber locals set by AuthRequired.
const (
	localUserID  = "userID"
	localUser    = "user"
	localProfile = "profile"
)

// postListLimit caps how many posts a listing returns.
const postListLimit = 100

// respondError writes the standard error body. Internal causes are logged here
// and never reach the client.
func respondError(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	if appErr.Code == models.CodeInternal {
		attrs := []any{slog.String("method", c.Method()), slog.String("path", c.Path())}
		if appErr.Err != nil {
			attrs = append(attrs, slog.String("error", appErr.Err.Error()))
		}
		middleware.Logger.ErrorContext(c.UserContext(), appErr.Message, attrs...)
	}
	return models.RespondWithError(c, appErr)
}

// parseBody decodes the JSON body into dest, answering 400 on malformed input.
// Callers should check: if !parseBody(c, &req) { return nil }
func parseBody(c *fiber.Ctx, dest any) bool {
	if err := c.BodyParser(dest); err != nil {
		_ = respondError(c, models.NewValidationError("invalid request body"))
		return false
	}
	return true
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns false.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = respondError(c, models.NewValidationError("invalid "+param))
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the id AuthRequired stored for this request.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

// currentUser returns the live identity loaded for mutating requests.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

// currentProfile returns the detached profile loaded for read-only requests.
func currentProfile(c *fiber.Ctx) *models.Profile {
	profile, _ := c.Locals(localProfile).(*models.Profile)
	return profile
}

func ok(c *fiber.Ctx, body fiber.Map) error {
	if body == nil {
		body = fiber.Map{}
	}
	body["success"] = true
	return c.JSON(body)
}
