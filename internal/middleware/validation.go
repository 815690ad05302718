package middleware

import (
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateID parses a positive integer path parameter and stores it in
// locals under "validated_<param>".
func (vm *ValidationMiddleware) ValidateID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errs := vm.validator.ValidateID(param, c.Params(param))
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedKey(param), id)
		return c.Next()
	}
}

// ValidatedKey is the locals key ValidateID writes to.
func ValidatedKey(param string) string {
	return "validated_" + param
}

// ValidatedID reads an id stored by ValidateID. The second result is false
// when the middleware did not run for param.
func ValidatedID(c *fiber.Ctx, param string) (int64, bool) {
	id, ok := c.Locals(ValidatedKey(param)).(int64)
	return id, ok
}
