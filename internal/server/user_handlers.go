package server

import (
	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID := optionalUserID(c)

	// Anonymous profile reads are cache-aside; viewer-specific reads carry
	// the per-viewer following flag and skip the cache.
	if viewerID == 0 {
		var user models.User
		err := cache.Aside(c.UserContext(), cache.ProfileKey(username), &user, cache.ProfileTTL, func() error {
			found, err := s.userService.GetProfile(c.UserContext(), username, 0)
			if err != nil {
				return err
			}
			user = *found
			return nil
		})
		if err != nil {
			return models.RespondWithError(c, err)
		}
		return models.RespondWithData(c, fiber.StatusOK, user)
	}

	user, err := s.userService.GetProfile(c.UserContext(), username, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user)
}

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c), 0)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user)
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name     *string `json:"name"`
		Bio      *string `json:"bio"`
		Location *string `json:"location"`
		Website  *string `json:"website"`
		Image    *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), service.UpdateProfileInput{
		Name:     req.Name,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
		Image:    req.Image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, user)
}

// ToggleFollow handles POST /api/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	followingID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.userService.ToggleFollow(c.UserContext(), currentUserID(c), followingID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, result)
}
