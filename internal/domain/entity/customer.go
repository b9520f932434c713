package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRank rango del cliente según su gasto acumulado.
type CustomerRank string

// Rangos de cliente.
const (
	RankStandard CustomerRank = "STANDARD"
	RankBronze   CustomerRank = "BRONZE"
	RankSilver   CustomerRank = "SILVER"
	RankGold     CustomerRank = "GOLD"
	RankPlatinum CustomerRank = "PLATINUM"
	RankDiamond  CustomerRank = "DIAMOND"
)

// rankThresholds tabla fija de umbrales monetarios, de mayor a menor.
var rankThresholds = []struct {
	min  decimal.Decimal
	rank CustomerRank
}{
	{decimal.NewFromInt(100_000), RankDiamond},
	{decimal.NewFromInt(50_000), RankPlatinum},
	{decimal.NewFromInt(20_000), RankGold},
	{decimal.NewFromInt(5_000), RankSilver},
	{decimal.NewFromInt(1_000), RankBronze},
}

// RankFor devuelve el rango que corresponde a un gasto acumulado.
func RankFor(lifetimeSpending decimal.Decimal) CustomerRank {
	for _, t := range rankThresholds {
		if lifetimeSpending.GreaterThanOrEqual(t.min) {
			return t.rank
		}
	}
	return RankStandard
}

// Customer representa un cliente de la empresa. LifetimeSpending sube al
// confirmar órdenes y baja (con tope en cero) al cancelarlas; el rango se
// recalcula en cada cambio.
type Customer struct {
	ID               string
	CompanyID        string
	Name             string
	TaxID            string
	Email            string
	Phone            string
	LifetimeSpending decimal.Decimal
	Rank             CustomerRank
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApplySpending suma (o resta, con delta negativo) gasto acumulado y
// recalcula el rango. El gasto nunca queda negativo.
func (c *Customer) ApplySpending(delta decimal.Decimal) {
	c.LifetimeSpending = c.LifetimeSpending.Add(delta)
	if c.LifetimeSpending.IsNegative() {
		c.LifetimeSpending = decimal.Zero
	}
	c.Rank = RankFor(c.LifetimeSpending)
}
