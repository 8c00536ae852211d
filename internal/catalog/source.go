package catalog

import (
	"context"
	"fmt"
)

// Source fetches products from a catalog. Implementations issue a read-all
// request for All and a category request otherwise, and return products in
// the order the catalog provides. Failures are reported as *FetchError.
type Source interface {
	Name() string
	Fetch(ctx context.Context, filter Filter) ([]Product, error)
}

// decodeEnvelope checks a decoded envelope and returns its products
func decodeEnvelope(env *Envelope, filter Filter) ([]Product, error) {
	if env.Success == nil {
		return nil, NewFetchError(KindMalformed, "response has no success field", filter)
	}
	if !*env.Success {
		return nil, NewFetchError(KindApplication, env.Message, filter)
	}

	products := make([]Product, len(env.Products))
	copy(products, env.Products)

	for i := range products {
		if err := products[i].validate(); err != nil {
			return nil, NewFetchErrorWithCause(KindMalformed, fmt.Sprintf("invalid product at index %d", i), filter, err)
		}
	}

	return products, nil
}
