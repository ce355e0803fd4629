package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ledgeradmin/internal/api/httpx"
	"ledgeradmin/internal/api/validate"
	"ledgeradmin/internal/config"
	"ledgeradmin/internal/metrics"
	"ledgeradmin/internal/middleware"
	"ledgeradmin/internal/models"
	"ledgeradmin/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	Auth       *middleware.AuthMiddleware
	UserSvc    *services.UserService
	BalanceSvc *services.BalanceService
	TxnSvc     *services.TransactionService
	DeleteSvc  *services.DeleteService
	StatsSvc   *services.StatsService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Username, Email, Password, Role string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			u, err := d.UserSvc.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, u)
		})

		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Email, Password string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			pair, err := d.UserSvc.Login(r.Context(), req.Email, req.Password)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, pair)
		})

		r.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			pair, err := d.UserSvc.Refresh(req.RefreshToken)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, pair)
		})

		// ---------- authenticated dashboard API ----------
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
				s, err := d.StatsSvc.Overview(r.Context())
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, s)
			})

			r.Get("/balances/current", func(w http.ResponseWriter, r *http.Request) {
				uid := r.URL.Query().Get("user_id")
				if ef := validate.Required("user_id", uid); ef != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", ef.Msg, ef)
					return
				}
				b, err := d.BalanceSvc.Current(r.Context(), uid)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, b)
			})

			r.Get("/transactions", func(w http.ResponseWriter, r *http.Request) {
				uid := r.URL.Query().Get("user_id")
				if ef := validate.Required("user_id", uid); ef != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", ef.Msg, ef)
					return
				}
				txs, err := d.TxnSvc.ListByUser(r.Context(), uid)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, txs)
			})

			r.Get("/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
				tx, err := d.TxnSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, tx)
			})

			r.Get("/transactions/{id}/delete-preview", func(w http.ResponseWriter, r *http.Request) {
				httpx.WriteJSON(w, http.StatusOK, d.DeleteSvc.PreviewDeleteImpact(r.Context(), chi.URLParam(r, "id")))
			})

			// ---------- mutations, admin only ----------
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))

				r.Post("/transactions", func(w http.ResponseWriter, r *http.Request) {
					var req struct {
						UserID string                   `json:"user_id"`
						Type   models.TransactionType   `json:"transaction_type"`
						Status models.TransactionStatus `json:"status"`
						Amount int64                    `json:"amount"`
						Debit  int64                    `json:"debit"`
						Credit int64                    `json:"credit"`
					}
					if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
						httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
						return
					}
					var errs validate.Errs
					if ef := validate.Required("user_id", req.UserID); ef != nil {
						errs = append(errs, *ef)
					}
					if ef := validate.MinInt("amount", req.Amount, 1); ef != nil {
						errs = append(errs, *ef)
					}
					if len(errs) > 0 {
						httpx.WriteError(w, http.StatusBadRequest, "bad_request", errs.Error(), errs)
						return
					}
					tx, err := d.TxnSvc.Record(r.Context(), models.Transaction{
						UserID: req.UserID,
						Type:   req.Type,
						Status: req.Status,
						Amount: req.Amount,
						Debit:  req.Debit,
						Credit: req.Credit,
					})
					if err != nil {
						httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
						return
					}
					httpx.WriteJSON(w, http.StatusCreated, tx)
				})

				r.Delete("/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
					res := d.DeleteSvc.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))
					status := http.StatusOK
					if !res.Success {
						status = http.StatusUnprocessableEntity
						if res.Error == "transaction not found" {
							status = http.StatusNotFound
						}
					}
					httpx.WriteJSON(w, status, res)
				})

				r.Post("/transactions/bulk-delete", func(w http.ResponseWriter, r *http.Request) {
					var req struct {
						TransactionIDs []string `json:"transaction_ids"`
					}
					if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.TransactionIDs) == 0 {
						httpx.WriteError(w, http.StatusBadRequest, "bad_request", "transaction_ids required", nil)
						return
					}
					res := d.DeleteSvc.DeleteTransactions(r.Context(), req.TransactionIDs)
					status := http.StatusOK
					if !res.Success {
						status = http.StatusUnprocessableEntity
					}
					httpx.WriteJSON(w, status, res)
				})
			})
		})
	})

	return r
}
