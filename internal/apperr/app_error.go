package apperr

import (
	"fmt"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

const (
	InvalidRequestBodyCode  = "INVALID_REQUEST_BODY"
	ProductIDRequiredCode   = "PRODUCT_ID_REQUIRED"
	ProductNotFoundCode     = "PRODUCT_NOT_FOUND"
	StorageFailureCode      = "STORAGE_FAILURE"
	PublishFailureCode      = "PUBLISH_FAILURE"
	InvalidProductEventCode = "INVALID_PRODUCT_EVENT"
)

var (
	InvalidRequestBodyErr  = zerror.NewValidationFailed(InvalidRequestBodyCode, "Invalid request body")
	ProductIDRequiredErr   = zerror.NewBadRequest(ProductIDRequiredCode, "Product ID is required")
	ProductNotFoundErr     = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
	StorageFailureErr      = zerror.NewInternalServerError(StorageFailureCode, "Storage failure")
	PublishFailureErr      = zerror.NewBadGateway(PublishFailureCode, "Failed to publish product event")
	InvalidProductEventErr = zerror.NewValidationFailed(InvalidProductEventCode, "Invalid product event")
)

// ProductNotFound returns the not found error for the given product id.
func ProductNotFound(id string) zerror.ZError {
	return ProductNotFoundErr.WithMsg(fmt.Sprintf("Product with ID %s not found", id))
}

// StorageFailure wraps a storage driver error under a client-facing message.
func StorageFailure(msg string, cause error) zerror.ZError {
	return StorageFailureErr.WithMsg(msg).WrapParent(cause)
}
