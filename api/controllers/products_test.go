package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/velureshop/velure-backend/internal/catalog"
	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"
)

type stubCatalogService struct {
	dto       *catalog.ProductDTO
	list      *catalog.ProductList
	err       error
	lastInput *catalog.CreateProductInput
	deleted   uuid.UUID
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	s.lastInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	s.deleted = productID
	return s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*catalog.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func (s *stubCatalogService) ListProducts(ctx context.Context, input catalog.ListProductsInput) (*catalog.ProductList, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.list == nil {
		return &catalog.ProductList{}, nil
	}
	return s.list, nil
}

func withProductID(req *http.Request, productID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		stub := &stubCatalogService{dto: &catalog.ProductDTO{SKU: "VL-001"}}
		body := `{"sku":"VL-001","name":"Candle","price":"4.00","pricing_tiers":[{"quantity":3,"price":"9.00"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.lastInput == nil || len(stub.lastInput.PricingTiers) != 1 {
			t.Fatalf("tier input not forwarded: %+v", stub.lastInput)
		}
		if !stub.lastInput.IsActive {
			t.Fatal("is_active must default to true")
		}
	})

	t.Run("bad price string", func(t *testing.T) {
		body := `{"sku":"VL-001","name":"Candle","price":"four dollars"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(&stubCatalogService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate sku", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeConflict, "sku VL-001 already exists")}
		body := `{"sku":"VL-001","name":"Candle","price":"4.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestGetProductInvalidID(t *testing.T) {
	logg := testLogger()

	req := withProductID(httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil), "not-a-uuid")
	rec := httptest.NewRecorder()
	GetProduct(&stubCatalogService{}, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}
}

func TestUpdateProduct(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	stub := &stubCatalogService{dto: &catalog.ProductDTO{ID: productID, SKU: "VL-001"}}
	body := `{"price":"5.50","pricing_tiers":[{"quantity":4,"price":"18.00"}]}`
	req := withProductID(httptest.NewRequest(http.MethodPatch, "/api/v1/products/"+productID.String(), strings.NewReader(body)), productID.String())
	rec := httptest.NewRecorder()
	UpdateProduct(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	stub := &stubCatalogService{}
	req := withProductID(httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil), productID.String())
	rec := httptest.NewRecorder()
	DeleteProduct(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.deleted != productID {
		t.Fatal("product id not forwarded to the service")
	}
}
