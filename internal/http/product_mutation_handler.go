package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

type productMutationHandler struct {
	srv           *Service
	productSvc    service.ProductService
	actorResolver ActorResolver
}

func newProductMutationHandler(srv *Service, productSvc service.ProductService, actorResolver ActorResolver) *productMutationHandler {
	if actorResolver == nil {
		actorResolver = StaticActor("")
	}
	return &productMutationHandler{
		srv:           srv,
		productSvc:    productSvc,
		actorResolver: actorResolver,
	}
}

func (h *productMutationHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	created, err := h.productSvc.CreateProduct(r.Context(), product, h.meta(r))
	if err != nil {
		h.fail(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	h.srv.writeJSON(w, r, http.StatusCreated, created)
}

func (h *productMutationHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	updated, err := h.productSvc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), product, h.meta(r))
	if err != nil {
		h.fail(w, r, fmt.Errorf("product service update product: %w", err))
		return
	}

	h.srv.writeJSON(w, r, http.StatusOK, updated)
}

func (h *productMutationHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.productSvc.DeleteProduct(r.Context(), chi.URLParam(r, "id"), h.meta(r))
	if err != nil {
		h.fail(w, r, fmt.Errorf("product service delete product: %w", err))
		return
	}

	h.srv.writeJSON(w, r, http.StatusOK, deleted)
}

func (h *productMutationHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (model.Product, bool) {
	var product model.Product
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.srv.cfg.MaxBodyBytes)).Decode(&product); err != nil {
		h.fail(w, r, apperr.InvalidRequestBodyErr.WrapParent(err))
		return model.Product{}, false
	}
	return product, true
}

func (h *productMutationHandler) meta(r *http.Request) service.MutationMeta {
	correlationID, _ := correlationid.FromContext(r.Context())
	return service.MutationMeta{
		Actor:         h.actorResolver(r),
		CorrelationID: correlationID,
	}
}

func (h *productMutationHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.srv.handleError(w, r, apierr.Mutation(err), err)
}
