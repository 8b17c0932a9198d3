package catalogstock

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/ports"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

var _ fulfillmentports.StockView = (*StockView)(nil)

// StockView bridges the catalog bounded context into fulfillment's stock port,
// translating catalog lookup errors into fulfillment's vocabulary.
type StockView struct {
	catalog catalogports.Service
}

func New(catalog catalogports.Service) *StockView {
	return &StockView{catalog: catalog}
}

func (v *StockView) OnHand(ctx context.Context, productID int64) (int64, error) {
	onHand, err := v.catalog.OnHand(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return 0, fulfillmentports.ErrProductNotFound
		}
		return 0, err
	}
	return onHand, nil
}
