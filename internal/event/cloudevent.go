package event

import (
	"strings"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

const (
	// CloudEventSource is the source attribute of product events sent over HTTP.
	CloudEventSource = "/product-catalog/products"

	cloudEventTypePrefix = "product."
)

// CloudEventType returns the CloudEvents type for an event type, e.g. "product.created".
func CloudEventType(t model.EventType) string {
	return cloudEventTypePrefix + strings.ToLower(string(t))
}

// IsProductCloudEventType reports whether ceType names a product event.
func IsProductCloudEventType(ceType string) bool {
	return strings.HasPrefix(ceType, cloudEventTypePrefix)
}
