package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"medishare/internal/domain"
	applog "medishare/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// The CSRF middleware stores the token in Locals; fall back to the cookie
	// for pages rendered before the middleware ran.
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if tok := c.Cookies("csrf_"); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientQuantity), errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// publicMessage is what the user sees for err. Internal failures never leak.
func publicMessage(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "This item is no longer available"
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return "Not enough stock for that quantity"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "That action is not allowed in the current state"
	case errors.Is(err, domain.ErrConflict):
		return "This item was just updated. Please reload and try again"
	}
	return "Something went wrong. Please try again."
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

// fail logs err at the level its kind deserves and writes the error response.
func fail(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	status := statusFor(err)
	c.Status(status)
	if status == fiber.StatusInternalServerError {
		applog.Error(c, action+".fail", err, fields)
	} else {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["reason"] = err.Error()
		applog.Security(c, action+".reject", fields)
	}
	msg := publicMessage(err)
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"error": msg})
	}
	return c.Render("notfound", fiber.Map{"Message": msg})
}

// ErrorHandler is the app-wide fallback: log, then show a friendly page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, nil)
	msg := "Something went wrong. Please try again."
	if code == fiber.StatusNotFound {
		msg = "Page not found"
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
