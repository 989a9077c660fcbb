package httpapi

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	codeNoFile        = "ERR_NO_FILE"
	codeInvalidParams = "ERR_INVALID_PARAMS"
	codeFileTooLarge  = "ERR_FILE_TOO_LARGE"
	codeNoContent     = "ERR_NO_CONTENT"
	codePipeline      = "ERR_PIPELINE"
	codeUnavailable   = "ERR_UNAVAILABLE"
	codeGeneration    = "ERR_GENERATION"
	codeInternal      = "ERR_INTERNAL"
)

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// handleError turns errors that escape handlers into the same JSON shape.
func (s *implServer) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return respondError(c, fiber.StatusBadRequest, codeFileTooLarge,
				fmt.Sprintf("File too large (max %dMB)", s.cfg.Server.MaxUploadSize))
		}
		return respondError(c, fe.Code, codeInternal, fe.Message)
	}

	s.logger.Error(c.UserContext(), "Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return respondError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
}

// formatValidationErrors lists each failed field and rule.
func formatValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
	}
	return msg
}
