package handlers

import (
	"medishare/internal/domain"
	applog "medishare/internal/log"
	"medishare/internal/services"
	"medishare/internal/support"
	"medishare/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SupportHandler struct {
	Support *services.SupportService
}

// GET /admin/queries
func (h *SupportHandler) Inbox(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return fail(c, "admin.queries", domain.NewValidationError("q", "enter a valid keyword"), nil)
	}
	crit := support.Criteria{Text: q, Status: c.Query("status"), Priority: c.Query("priority")}
	queries, counts, err := h.Support.Inbox(crit)
	if err != nil {
		return fail(c, "admin.queries", err, nil)
	}
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"items": queries, "counts": counts})
	}
	return render(c, "admin_queries", fiber.Map{"Queries": queries, "Counts": counts, "Criteria": crit})
}

// GET /admin/queries/:id
func (h *SupportHandler) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	q, err := h.Support.Get(id)
	if err != nil {
		return fail(c, "admin.query", err, map[string]any{"query_id": id})
	}
	if wantsJSON(c) {
		return c.JSON(q)
	}
	return render(c, "admin_query", fiber.Map{"Q": q})
}

// POST /admin/queries/:id/replies
func (h *SupportHandler) Reply(c *fiber.Ctx) error {
	id := c.Params("id")
	author := "Admin"
	if u, ok := c.Locals("user").(*domain.Account); ok && u != nil {
		author = u.Name
	}
	q, err := h.Support.Reply(id, author, c.FormValue("message"))
	if err != nil {
		return fail(c, "admin.query.reply", err, map[string]any{"query_id": id})
	}
	applog.Audit(c, "admin.query.reply", map[string]any{"query_id": id, "status": q.Status, "replies": len(q.Replies)})
	return done(c, "/admin/queries/"+id, q)
}

// POST /admin/queries/:id/resolve
func (h *SupportHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	q, err := h.Support.Resolve(id)
	if err != nil {
		return fail(c, "admin.query.resolve", err, map[string]any{"query_id": id})
	}
	applog.Audit(c, "admin.query.resolve", map[string]any{"query_id": id, "status": q.Status})
	return done(c, "/admin/queries/"+id, q)
}

// POST /admin/queries/:id/reopen
func (h *SupportHandler) Reopen(c *fiber.Ctx) error {
	id := c.Params("id")
	q, err := h.Support.Reopen(id)
	if err != nil {
		return fail(c, "admin.query.reopen", err, map[string]any{"query_id": id})
	}
	applog.Audit(c, "admin.query.reopen", map[string]any{"query_id": id, "status": q.Status})
	return done(c, "/admin/queries/"+id, q)
}
