package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velureshop/velure-backend/api/responses"
	"github.com/velureshop/velure-backend/api/validators"
	"github.com/velureshop/velure-backend/internal/catalog"
	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"
	"github.com/velureshop/velure-backend/pkg/logger"
	"github.com/velureshop/velure-backend/pkg/pagination"
)

type pricingTierRequest struct {
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	Price           string `json:"price" validate:"required"`
	DiscountPercent *int   `json:"discount_percent,omitempty"`
}

type createProductRequest struct {
	SKU          string               `json:"sku" validate:"required"`
	Name         string               `json:"name" validate:"required"`
	Description  *string              `json:"description,omitempty"`
	Price        string               `json:"price" validate:"required"`
	IsActive     *bool                `json:"is_active,omitempty"`
	PricingTiers []pricingTierRequest `json:"pricing_tiers,omitempty" validate:"dive"`
}

type updateProductRequest struct {
	SKU          *string               `json:"sku,omitempty"`
	Name         *string               `json:"name,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Price        *string               `json:"price,omitempty"`
	IsActive     *bool                 `json:"is_active,omitempty"`
	PricingTiers *[]pricingTierRequest `json:"pricing_tiers,omitempty"`
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal string").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

func buildTierInputs(reqs []pricingTierRequest) ([]catalog.PricingTierInput, error) {
	tiers := make([]catalog.PricingTierInput, 0, len(reqs))
	for _, req := range reqs {
		price, err := parseMoney(req.Price, "pricing_tiers.price")
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, catalog.PricingTierInput{
			Quantity:        req.Quantity,
			Price:           price,
			DiscountPercent: req.DiscountPercent,
		})
	}
	return tiers, nil
}

// CreateProduct adds a product to the catalog.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := parseMoney(req.Price, "price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tiers, err := buildTierInputs(req.PricingTiers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		dto, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			SKU:          req.SKU,
			Name:         req.Name,
			Description:  req.Description,
			Price:        price,
			IsActive:     active,
			PricingTiers: tiers,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GetProduct returns one catalog product with its pricing tiers.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListProducts pages the catalog. ?active=true narrows to sellable items.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			Limit:      limit,
			Cursor:     strings.TrimSpace(r.URL.Query().Get("cursor")),
			ActiveOnly: strings.EqualFold(r.URL.Query().Get("active"), "true"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateProduct applies a partial update to a catalog product.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			SKU:         req.SKU,
			Name:        req.Name,
			Description: req.Description,
			IsActive:    req.IsActive,
		}
		if req.Price != nil {
			price, err := parseMoney(*req.Price, "price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Price = &price
		}
		if req.PricingTiers != nil {
			tiers, err := buildTierInputs(*req.PricingTiers)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.PricingTiers = &tiers
		}

		dto, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DeleteProduct removes a product and its pricing tiers.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productId")
	productID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return productID, nil
}
