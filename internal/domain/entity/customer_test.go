package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// TestRankFor umbrales fijos de la tabla de rangos, incluidos los bordes
// exactos.
func TestRankFor(t *testing.T) {
	cases := []struct {
		spending int64
		want     entity.CustomerRank
	}{
		{0, entity.RankStandard},
		{999, entity.RankStandard},
		{1_000, entity.RankBronze},
		{4_999, entity.RankBronze},
		{5_000, entity.RankSilver},
		{19_999, entity.RankSilver},
		{20_000, entity.RankGold},
		{49_999, entity.RankGold},
		{50_000, entity.RankPlatinum},
		{99_999, entity.RankPlatinum},
		{100_000, entity.RankDiamond},
		{1_000_000, entity.RankDiamond},
	}
	for _, tc := range cases {
		got := entity.RankFor(decimal.NewFromInt(tc.spending))
		assert.Equal(t, tc.want, got, "gasto %d", tc.spending)
	}
}

func TestApplySpending(t *testing.T) {
	c := &entity.Customer{Rank: entity.RankStandard, LifetimeSpending: decimal.Zero}

	c.ApplySpending(decimal.NewFromInt(6_000))
	assert.Equal(t, entity.RankSilver, c.Rank)
	assert.True(t, c.LifetimeSpending.Equal(decimal.NewFromInt(6_000)))

	// Reversión parcial baja el rango
	c.ApplySpending(decimal.NewFromInt(-5_500))
	assert.Equal(t, entity.RankStandard, c.Rank)

	// La reversión nunca deja gasto negativo
	c.ApplySpending(decimal.NewFromInt(-10_000))
	assert.True(t, c.LifetimeSpending.IsZero())
	assert.Equal(t, entity.RankStandard, c.Rank)
}
