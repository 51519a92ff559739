package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velureshop/velure-backend/api/responses"
	"github.com/velureshop/velure-backend/api/validators"
	"github.com/velureshop/velure-backend/internal/orders"
	"github.com/velureshop/velure-backend/pkg/enums"
	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"
	"github.com/velureshop/velure-backend/pkg/logger"
	"github.com/velureshop/velure-backend/pkg/pagination"
)

// CreateOrder receives a checkout submission and records it through the
// intake pipeline. A merge into a recent order responds 200, a fresh order
// responds 201.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var intent orders.PurchaseIntent
		if err := validators.DecodeJSONBody(r, &intent); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		intent.CustomerName = validators.SanitizeString(intent.CustomerName, 120)
		intent.Phone = validators.SanitizeString(intent.Phone, 32)
		intent.City = validators.SanitizeString(intent.City, 80)
		intent.Address = validators.SanitizeString(intent.Address, 240)

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPhone(ctx, intent.Phone)
		}
		result, err := svc.RecordPurchaseIntent(ctx, intent)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithOrderID(ctx, result.Order.DisplayID)
			if result.Merged {
				logg.Info(ctx, "order.merged")
			} else {
				logg.Info(ctx, "order.created")
			}
		}
		if result.Merged {
			responses.WriteSuccess(w, result)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetOrder returns one order by its customer-facing id.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		displayID := chi.URLParam(r, "displayId")
		view, err := svc.GetOrder(r.Context(), displayID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ListOrders pages the order store for the admin dashboard.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := orders.ListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			params.Filters.Status = &status
		}
		params.Filters.Phone = strings.TrimSpace(r.URL.Query().Get("phone"))
		if from, err := parseDateQuery(r, "date_from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if from != nil {
			params.Filters.DateFrom = from
		}
		if to, err := parseDateQuery(r, "date_to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if to != nil {
			end := to.Add(24*time.Hour - time.Nanosecond)
			params.Filters.DateTo = &end
		}

		list, err := svc.ListOrders(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus moves an order along its lifecycle.
func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(req.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
			return
		}

		displayID := chi.URLParam(r, "displayId")
		view, err := svc.UpdateStatus(r.Context(), displayID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithOrderID(r.Context(), view.DisplayID)
			logg.Info(ctx, "order.status_updated")
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteOrder removes an order and its line items.
func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		displayID := chi.URLParam(r, "displayId")
		if err := svc.DeleteOrder(r.Context(), displayID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	ts, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date filter must use YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return &ts, nil
}
