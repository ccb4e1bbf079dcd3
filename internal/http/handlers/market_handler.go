package handlers

import (
	"math"
	"strconv"

	"medishare/internal/catalog"
	"medishare/internal/domain"
	"medishare/internal/log"
	"medishare/internal/services"
	"medishare/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MarketHandler struct {
	Market     *services.MarketService
	DefaultMax float64
}

// browseParams reads q, category, min, max, sort and view from the query string.
func browseParams(c *fiber.Ctx, defMax float64) (catalog.Criteria, catalog.SortKey, catalog.DisplayMode, error) {
	crit := catalog.DefaultCriteria()
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return crit, "", "", domain.NewValidationError("q", "enter a valid keyword (letters and numbers only)")
	}
	cat, ok := validate.Category(c.Query("category"))
	if !ok {
		return crit, "", "", domain.NewValidationError("category", "invalid category")
	}
	lo, ok := validate.Price(c.Query("min"), 0)
	if !ok {
		return crit, "", "", domain.NewValidationError("min", "must be a non-negative number")
	}
	hi, ok := validate.Price(c.Query("max"), defMax)
	if !ok {
		return crit, "", "", domain.NewValidationError("max", "must be a non-negative number")
	}
	key, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		return crit, "", "", err
	}
	crit.Query, crit.Category, crit.Min, crit.Max = q, cat, lo, hi
	return crit, key, catalog.ParseDisplayMode(c.Query("view")), nil
}

// GET /medicines
func (h *MarketHandler) Medicines(c *fiber.Ctx) error {
	crit, key, mode, err := browseParams(c, h.DefaultMax)
	if err != nil {
		return fail(c, "market.browse", err, map[string]any{"query": c.Request().URI().QueryArgs().String()})
	}
	view, err := h.Market.Browse(crit, key, mode)
	if err != nil {
		return fail(c, "market.browse", err, nil)
	}
	cats, err := h.Market.Categories()
	if err != nil {
		return fail(c, "market.categories", err, nil)
	}
	return render(c, "medicines", fiber.Map{
		"View": view, "Criteria": crit, "Categories": cats,
	})
}

// GET /api/v1/listings
func (h *MarketHandler) Listings(c *fiber.Ctx) error {
	crit, key, mode, err := browseParams(c, math.Inf(1))
	if err != nil {
		return fail(c, "api.listings", err, nil)
	}
	view, err := h.Market.Browse(crit, key, mode)
	if err != nil {
		return fail(c, "api.listings", err, nil)
	}
	return c.JSON(view)
}

// POST /medicines/:id/purchase
func (h *MarketHandler) Purchase(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "market.purchase", &domain.NotFoundError{Kind: "listing", ID: c.Params("id")}, nil)
	}
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil {
		return fail(c, "market.purchase", domain.NewValidationError("qty", "must be a whole number"), map[string]any{"listing_id": id})
	}
	txn, err := h.Market.Purchase(services.Order{
		ListingID: id,
		Qty:       qty,
		BuyerName: c.FormValue("name"),
		Address:   c.FormValue("address"),
	})
	if err != nil {
		return fail(c, "market.purchase", err, map[string]any{"listing_id": id, "qty": qty})
	}
	log.Audit(c, "market.purchase", map[string]any{
		"listing_id": id, "transaction_id": txn.ID, "qty": qty, "total": txn.Total,
	})
	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(txn)
	}
	return render(c, "purchase_done", fiber.Map{"Txn": txn})
}
