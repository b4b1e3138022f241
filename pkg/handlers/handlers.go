// Package handlers wires the per-area HTTP handlers onto a chi router and
// applies the authentication and role gates each route requires.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/veridex/carbon-ledger/pkg/auth"
	"github.com/veridex/carbon-ledger/pkg/handlers/admin"
	"github.com/veridex/carbon-ledger/pkg/handlers/projects"
	"github.com/veridex/carbon-ledger/pkg/handlers/purchases"
	"github.com/veridex/carbon-ledger/pkg/handlers/retirements"
	"github.com/veridex/carbon-ledger/pkg/handlers/wallets"
	"github.com/veridex/carbon-ledger/pkg/ledger"
	"github.com/veridex/carbon-ledger/pkg/lifecycle"
	"github.com/veridex/carbon-ledger/pkg/middleware"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// ApiHandler groups the per-area handlers behind a single dependency root.
type ApiHandler struct {
	Wallets     *wallets.WalletsHandler
	Projects    *projects.ProjectsHandler
	Purchases   *purchases.PurchasesHandler
	Retirements *retirements.RetirementsHandler
	Admin       *admin.AdminHandler
}

// NewApiHandler creates an ApiHandler from the storage layer, the trading
// engine, and the certification workflow.
func NewApiHandler(store storage.Storage, engine *ledger.Engine, workflow *lifecycle.Workflow) *ApiHandler {
	return &ApiHandler{
		Wallets:     wallets.NewWalletsHandler(store),
		Projects:    projects.NewProjectsHandler(store, store),
		Purchases:   purchases.NewPurchasesHandler(engine, store),
		Retirements: retirements.NewRetirementsHandler(engine, store),
		Admin:       admin.NewAdminHandler(workflow),
	}
}

// Router builds the HTTP routing table. Certificate verification is public;
// everything else requires an authenticated principal, and the back-office
// routes additionally require the admin role.
func (h *ApiHandler) Router(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)

	// Anyone can verify a retirement certificate by serial number.
	r.Get("/certificates/{serialNumber}", func(w http.ResponseWriter, req *http.Request) {
		h.Retirements.GetCertificateBySerial(w, req, chi.URLParam(req, "serialNumber"))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Post("/wallets", h.Wallets.CreateWallet)
		r.With(auth.RequireRole(models.RoleAdmin)).Get("/wallets", h.Wallets.ListWallets)
		r.Get("/wallets/{userId}", func(w http.ResponseWriter, req *http.Request) {
			h.Wallets.GetWalletByUserId(w, req, chi.URLParam(req, "userId"))
		})

		r.With(auth.RequireRole(models.RoleProjectOwner)).Post("/projects", h.Projects.RegisterProject)
		r.Get("/projects", h.Projects.ListProjects)
		r.Get("/projects/{projectId}", func(w http.ResponseWriter, req *http.Request) {
			h.Projects.GetProjectById(w, req, chi.URLParam(req, "projectId"))
		})
		r.Get("/projects/{projectId}/summary", func(w http.ResponseWriter, req *http.Request) {
			h.Projects.GetProjectSummary(w, req, chi.URLParam(req, "projectId"))
		})
		r.Get("/projects/{projectId}/transactions", func(w http.ResponseWriter, req *http.Request) {
			h.Projects.ListProjectTransactions(w, req, chi.URLParam(req, "projectId"))
		})

		r.With(auth.RequireRole(models.RoleBuyer, models.RoleTrader)).Post("/purchases", h.Purchases.CreatePurchase)
		r.Get("/purchases", h.Purchases.ListMyPurchases)
		r.Get("/purchases/{transactionId}", func(w http.ResponseWriter, req *http.Request) {
			h.Purchases.GetTransactionById(w, req, chi.URLParam(req, "transactionId"))
		})

		r.With(auth.RequireRole(models.RoleBuyer, models.RoleTrader)).Post("/retirements", h.Retirements.CreateRetirement)
		r.Get("/retirements", h.Retirements.ListMyCertificates)

		r.Route("/admin/projects/{projectId}", func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin))
			r.Post("/advance", func(w http.ResponseWriter, req *http.Request) {
				h.Admin.AdvanceProject(w, req, chi.URLParam(req, "projectId"))
			})
			r.Post("/reject", func(w http.ResponseWriter, req *http.Request) {
				h.Admin.RejectProject(w, req, chi.URLParam(req, "projectId"))
			})
			r.Post("/retire", func(w http.ResponseWriter, req *http.Request) {
				h.Admin.RetireProject(w, req, chi.URLParam(req, "projectId"))
			})
			r.Patch("/verification", func(w http.ResponseWriter, req *http.Request) {
				h.Admin.UpdateVerification(w, req, chi.URLParam(req, "projectId"))
			})
		})
	})

	return r
}
