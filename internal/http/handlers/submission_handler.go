package handlers

import (
	"medishare/internal/domain"
	"medishare/internal/log"
	"medishare/internal/services"
	"medishare/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SubmissionHandler struct {
	Submissions *services.SubmissionService
	Market      *services.MarketService
}

// GET /sell
func (h *SubmissionHandler) SellForm(c *fiber.Ctx) error {
	cats, err := h.Market.Categories()
	if err != nil {
		return fail(c, "sell.form", err, nil)
	}
	return render(c, "sell", fiber.Map{"Categories": cats})
}

// POST /sell
func (h *SubmissionHandler) Sell(c *fiber.Ctx) error {
	var f validate.ListingForm
	if err := c.BodyParser(&f); err != nil {
		return fail(c, "sell.submit", domain.NewValidationError("", "could not read the form"), nil)
	}
	l, err := h.Submissions.SubmitListing(f)
	if err != nil {
		return fail(c, "sell.submit", err, nil)
	}
	log.Audit(c, "sell.submit", map[string]any{"listing_id": l.ID, "status": l.Status})
	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(l)
	}
	return render(c, "submitted", fiber.Map{"Message": "Your listing was submitted and is awaiting review.", "ID": l.ID})
}

// GET /dispose
func (h *SubmissionHandler) DisposeForm(c *fiber.Ctx) error {
	return render(c, "dispose", nil)
}

// POST /dispose
func (h *SubmissionHandler) Dispose(c *fiber.Ctx) error {
	var f validate.DisposalForm
	if err := c.BodyParser(&f); err != nil {
		return fail(c, "dispose.submit", domain.NewValidationError("", "could not read the form"), nil)
	}
	d, err := h.Submissions.RequestDisposal(f)
	if err != nil {
		return fail(c, "dispose.submit", err, nil)
	}
	log.Audit(c, "dispose.submit", map[string]any{"request_id": d.ID})
	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(d)
	}
	return render(c, "submitted", fiber.Map{"Message": "Your pickup request was received.", "ID": d.ID})
}
