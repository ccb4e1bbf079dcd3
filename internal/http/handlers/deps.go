package handlers

import (
	"medishare/internal/clock"
	"medishare/internal/config"
	"medishare/internal/repos"
	"medishare/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler       *AuthHandler
	MarketHandler     *MarketHandler
	SubmissionHandler *SubmissionHandler
	AdminHandler      *AdminHandler
	SupportHandler    *SupportHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, clk clock.Clock) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	listingRepo := repos.NewListingRepo(db)
	accountRepo := repos.NewAccountRepo(db)
	pharmacyRepo := repos.NewPharmacyRepo(db)
	queryRepo := repos.NewQueryRepo(db)
	txnRepo := repos.NewTransactionRepo(db)
	disposalRepo := repos.NewDisposalRepo(db)

	authSvc := services.NewAuthService(accountRepo)
	marketSvc := services.NewMarketService(catRepo, listingRepo, txnRepo, clk)
	modSvc := services.NewModerationService(listingRepo, accountRepo, pharmacyRepo, queryRepo, txnRepo, clk)
	supportSvc := services.NewSupportService(queryRepo, clk)
	subSvc := services.NewSubmissionService(catRepo, listingRepo, disposalRepo, clk)

	return &Deps{
		Auth:              authSvc,
		AuthHandler:       &AuthHandler{Auth: authSvc},
		MarketHandler:     &MarketHandler{Market: marketSvc, DefaultMax: cfg.DefaultPriceMax},
		SubmissionHandler: &SubmissionHandler{Submissions: subSvc, Market: marketSvc},
		AdminHandler:      &AdminHandler{Moderation: modSvc, Market: marketSvc},
		SupportHandler:    &SupportHandler{Support: supportSvc},
	}
}
