package swagger

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	apicontract "github.com/tuanvumaihuynh/product-catalog/api-contract"
)

// LoadContract parses and validates the embedded OpenAPI document.
func LoadContract(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(apicontract.GetSpecBytes())
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}

	return doc, nil
}
