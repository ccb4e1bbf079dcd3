package handlers

import (
	"time"

	"medishare/internal/config"
	applog "medishare/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Register mounts every route. Global middleware is installed by the caller.
func Register(app *fiber.App, d *Deps, cfg config.Config) {
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/medicines") })
	app.Get("/medicines", d.MarketHandler.Medicines)
	app.Post("/medicines/:id/purchase", d.MarketHandler.Purchase)
	app.Get("/sell", d.SubmissionHandler.SellForm)
	app.Post("/sell", d.SubmissionHandler.Sell)
	app.Get("/dispose", d.SubmissionHandler.DisposeForm)
	app.Post("/dispose", d.SubmissionHandler.Dispose)

	api := app.Group("/api/v1")
	api.Get("/listings", limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMin,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|listings"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.listings.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), d.MarketHandler.Listings)

	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        cfg.LoginMaxAttempts,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	admin := app.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/", d.AdminHandler.Dashboard)
	admin.Get("/listings", d.AdminHandler.ListingsPage)
	admin.Post("/listings/:id/approve", d.AdminHandler.ApproveListing)
	admin.Post("/listings/:id/reject", d.AdminHandler.RejectListing)
	admin.Get("/accounts", d.AdminHandler.AccountsPage)
	admin.Post("/accounts/:id/verify", d.AdminHandler.VerifyAccount)
	admin.Post("/accounts/:id/reject", d.AdminHandler.RejectAccount)
	admin.Get("/pharmacies", d.AdminHandler.PharmaciesPage)
	admin.Post("/pharmacies/:id/verify", d.AdminHandler.VerifyPharmacy)
	admin.Post("/pharmacies/:id/reject", d.AdminHandler.RejectPharmacy)
	admin.Get("/queries", d.SupportHandler.Inbox)
	admin.Get("/queries/:id", d.SupportHandler.Detail)
	admin.Post("/queries/:id/replies", d.SupportHandler.Reply)
	admin.Post("/queries/:id/resolve", d.SupportHandler.Resolve)
	admin.Post("/queries/:id/reopen", d.SupportHandler.Reopen)
	admin.Get("/transactions", d.AdminHandler.TransactionsPage)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
