package handler

import (
	"quiz-master/internal/domain"
	"quiz-master/internal/middleware"
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var pathValidator = validation.NewValidator()

// pathID returns the id validated by middleware.ValidateID for param, or
// parses it when the route was registered without that middleware.
func pathID(c *fiber.Ctx, param string) (int64, error) {
	if id, ok := middleware.ValidatedID(c, param); ok {
		return id, nil
	}
	id, errs := pathValidator.ValidateID(param, c.Params(param))
	if len(errs) > 0 {
		return 0, errs
	}
	return id, nil
}

func currentUser(c *fiber.Ctx) (*middleware.Identity, error) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return nil, domain.NewUnauthorizedError("authentication required")
	}
	return identity, nil
}
