// Package pricing computes quotes for custom print jobs. The same engine
// backs the public quote endpoint and order intake so the two can never
// disagree on unit prices.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/printlabth/printlab-backend/pkg/enums"
)

// baseRatePerGram is the per-gram charge in whole baht before the
// material multiplier is applied.
var baseRatePerGram = decimal.NewFromInt(2)

var materialMultipliers = map[enums.Material]decimal.Decimal{
	enums.MaterialPLA:   decimal.NewFromFloat(1.0),
	enums.MaterialPETG:  decimal.NewFromFloat(1.2),
	enums.MaterialABS:   decimal.NewFromFloat(1.3),
	enums.MaterialTPU:   decimal.NewFromFloat(1.5),
	enums.MaterialWood:  decimal.NewFromFloat(1.4),
	enums.MaterialMetal: decimal.NewFromFloat(2.0),
}

var deliveryMultipliers = map[enums.DeliveryType]decimal.Decimal{
	enums.DeliveryStandard: decimal.NewFromFloat(1.0),
	enums.DeliveryExpress:  decimal.NewFromFloat(1.5),
}

var (
	// ErrInvalidWeight is returned when the requested weight is zero or negative.
	ErrInvalidWeight = errors.New("weight must be greater than zero")
	// ErrInvalidQuantity is returned when the requested quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// Quote is a non-persisted price estimate. Amounts are whole baht.
type Quote struct {
	UnitPrice  int64     `json:"unitPrice"`
	TotalPrice int64     `json:"totalPrice"`
	Breakdown  Breakdown `json:"breakdown"`
}

// Breakdown exposes the factors behind a quote.
type Breakdown struct {
	WeightGrams        int     `json:"weightGrams"`
	BaseRatePerGram    int64   `json:"baseRatePerGram"`
	Material           string  `json:"material"`
	MaterialMultiplier float64 `json:"materialMultiplier"`
	Quantity           int     `json:"quantity"`
	DeliveryType       string  `json:"deliveryType"`
	DeliveryMultiplier float64 `json:"deliveryMultiplier"`
}

// Engine prices print jobs from a fixed multiplier table.
type Engine struct{}

// NewEngine returns a pricing engine.
func NewEngine() *Engine {
	return &Engine{}
}

// MaterialMultiplier reports the multiplier for a material. Unknown
// materials fall back to 1.0 so a new slicer profile never blocks an order.
func (e *Engine) MaterialMultiplier(material enums.Material) decimal.Decimal {
	if mult, ok := materialMultipliers[material]; ok {
		return mult
	}
	return decimal.NewFromInt(1)
}

// UnitPrice computes the per-unit price in whole baht, rounded up.
func (e *Engine) UnitPrice(weightGrams int, material enums.Material) (int64, error) {
	if weightGrams <= 0 {
		return 0, ErrInvalidWeight
	}
	price := decimal.NewFromInt(int64(weightGrams)).
		Mul(baseRatePerGram).
		Mul(e.MaterialMultiplier(material))
	return price.Ceil().IntPart(), nil
}

// ItemTotal computes the line total for an order item. Delivery speed does
// not participate here, it is charged once on the standalone quote.
func (e *Engine) ItemTotal(weightGrams int, material enums.Material, quantity int) (unitPrice, totalPrice int64, err error) {
	if quantity <= 0 {
		return 0, 0, ErrInvalidQuantity
	}
	unitPrice, err = e.UnitPrice(weightGrams, material)
	if err != nil {
		return 0, 0, err
	}
	return unitPrice, unitPrice * int64(quantity), nil
}

// QuoteOrder produces a standalone quote including the delivery multiplier.
func (e *Engine) QuoteOrder(weightGrams int, material enums.Material, quantity int, delivery enums.DeliveryType) (*Quote, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	unitPrice, err := e.UnitPrice(weightGrams, material)
	if err != nil {
		return nil, err
	}

	deliveryMult, ok := deliveryMultipliers[delivery]
	if !ok {
		deliveryMult = decimal.NewFromInt(1)
	}

	total := decimal.NewFromInt(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(deliveryMult).
		Ceil().
		IntPart()

	materialMult, _ := e.MaterialMultiplier(material).Float64()
	deliveryMultF, _ := deliveryMult.Float64()
	return &Quote{
		UnitPrice:  unitPrice,
		TotalPrice: total,
		Breakdown: Breakdown{
			WeightGrams:        weightGrams,
			BaseRatePerGram:    baseRatePerGram.IntPart(),
			Material:           material.String(),
			MaterialMultiplier: materialMult,
			Quantity:           quantity,
			DeliveryType:       delivery.String(),
			DeliveryMultiplier: deliveryMultF,
		},
	}, nil
}
