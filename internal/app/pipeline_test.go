package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	httpsvc "github.com/tuanvumaihuynh/product-catalog/internal/http"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/publisher"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

func newCatalog(t *testing.T) (*miniredis.Miniredis, http.Handler) {
	t.Helper()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	stores, err := OpenStores(ctx, StoreConfig{
		Storage:     config.Storage{Driver: config.StorageDriverSQLite, ProductsTable: "products"},
		EventStore:  config.EventStore{Driver: config.EventStoreDriverRedis},
		SQLite:      config.SQLite{Path: filepath.Join(t.TempDir(), "catalog.db"), BusyTimeout: time.Second},
		Redis:       config.Redis{Addr: mr.Addr(), PoolSize: 2},
		AutoMigrate: true,
	}, ProductStore|EventStore, discardLogger())
	require.NoError(t, err)
	t.Cleanup(stores.Close)

	recorder, err := event.NewRecorder(discardLogger(), stores.Events)
	require.NoError(t, err)

	productSvc := service.NewProductService(discardLogger(), stores.Products,
		publisher.NewDirectPublisher(recorder, time.Second))

	h := httpsvc.New(config.HTTP{}, discardLogger(),
		httpsvc.WithProducts(productSvc, httpsvc.StaticActor("usuario@email.com")),
	).Router()

	return mr, h
}

func send(h http.Handler, method, target, body, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(correlationid.Header, requestID)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestProductCatalogPipeline(t *testing.T) {
	const partition = "#product_SH-1"

	t.Run("Should record a CREATED event for a new product", func(t *testing.T) {
		mr, h := newCatalog(t)

		rr := send(h, http.MethodPost, "/products",
			`{"id":"caller-id","productName":"Shoe","code":"SH-1","price":10.5,"model":"M1","productUrl":"https://shop/sh-1"}`, "req-1")
		require.Equal(t, http.StatusCreated, rr.Code)

		var created model.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.NotEqual(t, "caller-id", created.ID)
		assert.NotEmpty(t, created.ID)

		members, err := mr.ZMembers(partition)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.True(t, strings.HasPrefix(members[0], "CREATED#"))

		key := partition + ":" + members[0]
		assert.Equal(t, "usuario@email.com", mr.HGet(key, "email"))
		assert.Equal(t, "req-1", mr.HGet(key, "requestId"))
		assert.Equal(t, "CREATED", mr.HGet(key, "eventType"))

		var info model.EventInfo
		require.NoError(t, json.Unmarshal([]byte(mr.HGet(key, "info")), &info))
		assert.Equal(t, model.EventInfo{ProductID: created.ID, Price: 10.5}, info)
	})

	t.Run("Should record UPDATED and DELETED events and return the prior product", func(t *testing.T) {
		mr, h := newCatalog(t)

		rr := send(h, http.MethodPost, "/products", `{"productName":"Shoe","code":"SH-1","price":10.5}`, "req-1")
		require.Equal(t, http.StatusCreated, rr.Code)
		var created model.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

		rr = send(h, http.MethodPut, "/products/"+created.ID, `{"productName":"Shoe","code":"SH-1","price":12}`, "req-2")
		require.Equal(t, http.StatusOK, rr.Code)

		rr = send(h, http.MethodDelete, "/products/"+created.ID, "", "req-3")
		require.Equal(t, http.StatusOK, rr.Code)
		var deleted model.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deleted))
		assert.Equal(t, created.ID, deleted.ID)
		assert.Equal(t, 12.0, deleted.Price)

		members, err := mr.ZMembers(partition)
		require.NoError(t, err)
		require.Len(t, members, 3)

		types := map[string]string{}
		for _, sk := range members {
			key := partition + ":" + sk
			types[mr.HGet(key, "eventType")] = mr.HGet(key, "requestId")
		}
		assert.Equal(t, map[string]string{"CREATED": "req-1", "UPDATED": "req-2", "DELETED": "req-3"}, types)

		rr = send(h, http.MethodGet, "/products/"+created.ID, "", "req-4")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Should not record an event when the product is missing", func(t *testing.T) {
		mr, h := newCatalog(t)

		rr := send(h, http.MethodPut, "/products/unknown-id", `{"code":"SH-1"}`, "req-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"message":"Product with ID unknown-id not found"}`, rr.Body.String())
		assert.False(t, mr.Exists(partition))
	})
}
