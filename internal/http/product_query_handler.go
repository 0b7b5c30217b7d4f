package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
)

type productQueryHandler struct {
	srv        *Service
	productSvc service.ProductService
}

func newProductQueryHandler(srv *Service, productSvc service.ProductService) *productQueryHandler {
	return &productQueryHandler{
		srv:        srv,
		productSvc: productSvc,
	}
}

func (h *productQueryHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListAllProducts(r.Context())
	if err != nil {
		err = fmt.Errorf("product service list all products: %w", err)
		h.srv.handleError(w, r, apierr.Query(err), err)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	h.srv.writeJSON(w, r, http.StatusOK, products)
}

func (h *productQueryHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productSvc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		err = fmt.Errorf("product service get product: %w", err)
		h.srv.handleError(w, r, apierr.Query(err), err)
		return
	}

	h.srv.writeJSON(w, r, http.StatusOK, product)
}
