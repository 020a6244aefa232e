package server

import (
	"errors"

	"peached/internal/auth"
	"peached/internal/featureflags"
	"peached/internal/middleware"
	"peached/internal/models"
	"peached/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired authenticates the x-auth-token header.
//
// GET and HEAD requests receive a detached, possibly cached *models.Profile in
// locals "profile". Every other method receives the live *models.User, read from
// the primary store without its password hash, in locals "user". Both set
// locals "userID".
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(auth.TokenHeader)
		if raw == "" {
			observability.AuthFailures.WithLabelValues("missing").Inc()
			return respondError(c, models.NewUnauthenticatedError("no token, authorization denied"))
		}

		claims, err := s.tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrMissingSecret) {
				return respondError(c, models.NewInternalError(err))
			}
			observability.AuthFailures.WithLabelValues("invalid").Inc()
			return respondError(c, models.NewInvalidTokenError(err))
		}
		userID, err := claims.UserID()
		if err != nil {
			observability.AuthFailures.WithLabelValues("invalid").Inc()
			return respondError(c, models.NewInvalidTokenError(err))
		}

		ctx := c.UserContext()
		if isReadOnly(c.Method()) {
			profile, err := s.userRepo.GetProfile(ctx, userID)
			if err != nil {
				return s.rejectLookup(c, err)
			}
			if profile.Deactivated {
				return s.rejectDeactivated(c)
			}
			c.Locals(localProfile, profile)
		} else {
			user, err := s.userRepo.GetByID(ctx, userID)
			if err != nil {
				return s.rejectLookup(c, err)
			}
			if user.Deactivated {
				return s.rejectDeactivated(c)
			}
			c.Locals(localUser, user)
		}

		if s.enforceFingerprint(userID) {
			hash, err := s.userRepo.GetPasswordHash(ctx, userID)
			if err != nil {
				return s.rejectLookup(c, err)
			}
			if auth.Fingerprint(hash) != claims.Fingerprint {
				observability.AuthFailures.WithLabelValues("stale").Inc()
				return respondError(c, models.NewInvalidTokenError(errors.New("token predates the current password")))
			}
		}

		c.Locals(localUserID, userID)
		c.SetUserContext(middleware.WithUserID(ctx, userID))
		return c.Next()
	}
}

func isReadOnly(method string) bool {
	return method == fiber.MethodGet || method == fiber.MethodHead
}

// enforceFingerprint reports whether tokens for userID must match the stored hash.
// The config switch turns it on for everyone; the feature flag rolls it out gradually.
func (s *Server) enforceFingerprint(userID uint) bool {
	return s.config.EnforceTokenFingerprint || s.featureFlags.Enabled(featureflags.TokenFingerprint, userID)
}

// rejectLookup answers a failed subject lookup. A missing identity means the
// token is no good; anything else is a server fault.
func (s *Server) rejectLookup(c *fiber.Ctx, err error) error {
	if models.HasCode(err, models.CodeNotFound) {
		observability.AuthFailures.WithLabelValues("unknown_user").Inc()
		return respondError(c, models.NewInvalidTokenError(err))
	}
	return respondError(c, err)
}

func (s *Server) rejectDeactivated(c *fiber.Ctx) error {
	observability.AuthFailures.WithLabelValues("deactivated").Inc()
	return respondError(c, models.NewInvalidTokenError(errors.New("identity is deactivated")))
}
