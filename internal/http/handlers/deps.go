package handlers

import (
	"github.com/jmoiron/sqlx"

	"gestorpro/internal/repos"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
	"gestorpro/internal/store"
)

type Deps struct {
	Ctl              *state.Controller
	AuthHandler      *AuthHandler
	TabHandler       *TabHandler
	InventoryHandler *InventoryHandler
	SaleHandler      *SaleHandler
	QuoteHandler     *QuoteHandler
	FileHandler      *FileHandler
	ShellHandler     *ShellHandler
}

// NewDeps wires repositories, services and the controller over the document
// store and the session database, and restores the last session. quit is
// called (in its own goroutine) once the user confirms quitting.
func NewDeps(st *store.Store, db *sqlx.DB, quit func()) *Deps {
	ids := services.NewIDGen()

	prodRepo := repos.NewProductRepo(st)
	saleRepo := repos.NewSaleRepo(st)
	quoteRepo := repos.NewQuoteRepo(st)
	userRepo := repos.NewUserRepo(st)
	sessRepo := repos.NewSessionRepo(db)

	ctl := state.New(state.Deps{
		Products:  prodRepo,
		Sales:     saleRepo,
		Quotes:    quoteRepo,
		Inventory: services.NewInventoryService(prodRepo, ids),
		Selling:   services.NewSaleService(saleRepo, ids),
		Quoting:   services.NewQuoteService(quoteRepo, ids),
		Auth:      services.NewAuthService(userRepo, sessRepo, ids),
	})
	ctl.Resume()

	return &Deps{
		Ctl:              ctl,
		AuthHandler:      &AuthHandler{Ctl: ctl},
		TabHandler:       &TabHandler{Ctl: ctl},
		InventoryHandler: &InventoryHandler{Ctl: ctl},
		SaleHandler:      &SaleHandler{Ctl: ctl},
		QuoteHandler:     &QuoteHandler{Ctl: ctl},
		FileHandler:      &FileHandler{Ctl: ctl},
		ShellHandler:     &ShellHandler{Ctl: ctl, Quit: quit},
	}
}
