package handlers

import (
	"medishare/internal/catalog"
	"medishare/internal/domain"
	applog "medishare/internal/log"
	"medishare/internal/review"
	"medishare/internal/services"
	"medishare/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Moderation *services.ModerationService
	Market     *services.MarketService
}

func reviewCriteria(c *fiber.Ctx) (review.Criteria, error) {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return review.Criteria{}, domain.NewValidationError("q", "enter a valid keyword")
	}
	return review.Criteria{Text: q, Status: c.Query("status")}, nil
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.Moderation.Dashboard()
	if err != nil {
		return fail(c, "admin.dashboard", err, nil)
	}
	if wantsJSON(c) {
		return c.JSON(d)
	}
	return render(c, "admin_dashboard", fiber.Map{"D": d})
}

// GET /admin/listings
func (h *AdminHandler) ListingsPage(c *fiber.Ctx) error {
	crit, err := reviewCriteria(c)
	if err != nil {
		return fail(c, "admin.listings", err, nil)
	}
	key, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		return fail(c, "admin.listings", err, nil)
	}
	items, err := h.Moderation.ListingQueue(crit, key)
	if err != nil {
		return fail(c, "admin.listings", err, nil)
	}
	sum, err := h.Moderation.Summary()
	if err != nil {
		return fail(c, "admin.listings", err, nil)
	}
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"items": items, "summary": sum})
	}
	return render(c, "admin_listings", fiber.Map{"Listings": items, "Summary": sum, "Criteria": crit, "Sort": key})
}

// POST /admin/listings/:id/approve
func (h *AdminHandler) ApproveListing(c *fiber.Ctx) error {
	id := c.Params("id")
	l, err := h.Moderation.ApproveListing(id)
	if err != nil {
		return fail(c, "admin.listing.approve", err, map[string]any{"listing_id": id})
	}
	applog.Audit(c, "admin.listing.approve", map[string]any{"listing_id": id, "status": l.Status, "bill_verified": l.BillVerified})
	return done(c, "/admin/listings", l)
}

// POST /admin/listings/:id/reject
func (h *AdminHandler) RejectListing(c *fiber.Ctx) error {
	id := c.Params("id")
	l, err := h.Moderation.RejectListing(id)
	if err != nil {
		return fail(c, "admin.listing.reject", err, map[string]any{"listing_id": id})
	}
	applog.Audit(c, "admin.listing.reject", map[string]any{"listing_id": id, "status": l.Status})
	return done(c, "/admin/listings", l)
}

// GET /admin/accounts
func (h *AdminHandler) AccountsPage(c *fiber.Ctx) error {
	crit, err := reviewCriteria(c)
	if err != nil {
		return fail(c, "admin.accounts", err, nil)
	}
	accounts, err := h.Moderation.AccountQueue(crit)
	if err != nil {
		return fail(c, "admin.accounts", err, nil)
	}
	if wantsJSON(c) {
		return c.JSON(accounts)
	}
	return render(c, "admin_accounts", fiber.Map{"Accounts": accounts, "Criteria": crit})
}

// POST /admin/accounts/:id/verify
func (h *AdminHandler) VerifyAccount(c *fiber.Ctx) error {
	id := c.Params("id")
	a, err := h.Moderation.VerifyAccount(id)
	if err != nil {
		return fail(c, "admin.account.verify", err, map[string]any{"account_id": id})
	}
	applog.Audit(c, "admin.account.verify", map[string]any{"account_id": id, "status": a.Status})
	return done(c, "/admin/accounts", a)
}

// POST /admin/accounts/:id/reject
func (h *AdminHandler) RejectAccount(c *fiber.Ctx) error {
	id := c.Params("id")
	a, err := h.Moderation.RejectAccount(id)
	if err != nil {
		return fail(c, "admin.account.reject", err, map[string]any{"account_id": id})
	}
	applog.Audit(c, "admin.account.reject", map[string]any{"account_id": id, "status": a.Status})
	return done(c, "/admin/accounts", a)
}

// GET /admin/pharmacies
func (h *AdminHandler) PharmaciesPage(c *fiber.Ctx) error {
	crit, err := reviewCriteria(c)
	if err != nil {
		return fail(c, "admin.pharmacies", err, nil)
	}
	ps, err := h.Moderation.PharmacyQueue(crit)
	if err != nil {
		return fail(c, "admin.pharmacies", err, nil)
	}
	if wantsJSON(c) {
		return c.JSON(ps)
	}
	return render(c, "admin_pharmacies", fiber.Map{"Pharmacies": ps, "Criteria": crit})
}

// POST /admin/pharmacies/:id/verify
func (h *AdminHandler) VerifyPharmacy(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.Moderation.VerifyPharmacy(id)
	if err != nil {
		return fail(c, "admin.pharmacy.verify", err, map[string]any{"pharmacy_id": id})
	}
	applog.Audit(c, "admin.pharmacy.verify", map[string]any{"pharmacy_id": id, "status": p.Status})
	return done(c, "/admin/pharmacies", p)
}

// POST /admin/pharmacies/:id/reject
func (h *AdminHandler) RejectPharmacy(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.Moderation.RejectPharmacy(id)
	if err != nil {
		return fail(c, "admin.pharmacy.reject", err, map[string]any{"pharmacy_id": id})
	}
	applog.Audit(c, "admin.pharmacy.reject", map[string]any{"pharmacy_id": id, "status": p.Status})
	return done(c, "/admin/pharmacies", p)
}

// GET /admin/transactions
func (h *AdminHandler) TransactionsPage(c *fiber.Ctx) error {
	txns, err := h.Market.Transactions(100)
	if err != nil {
		return fail(c, "admin.transactions", err, nil)
	}
	if wantsJSON(c) {
		return c.JSON(txns)
	}
	return render(c, "admin_transactions", fiber.Map{"Transactions": txns})
}

// done answers a successful form post: JSON clients get the item, browsers go back.
func done(c *fiber.Ctx, back string, v any) error {
	if wantsJSON(c) {
		return c.JSON(v)
	}
	return c.Redirect(back)
}
