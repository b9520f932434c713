package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

func TestAdjustmentKindIsAddition(t *testing.T) {
	additions := []entity.AdjustmentKind{
		entity.AdjustmentAddition, entity.AdjustmentFound, entity.AdjustmentReturnIn,
	}
	subtractions := []entity.AdjustmentKind{
		entity.AdjustmentSubtraction, entity.AdjustmentDamaged, entity.AdjustmentLost,
	}
	for _, k := range additions {
		assert.True(t, k.IsAddition(), "%s debe sumar", k)
		assert.Equal(t, entity.MovementAdjustmentAdd, k.MovementKind())
	}
	for _, k := range subtractions {
		assert.False(t, k.IsAddition(), "%s debe restar", k)
		assert.Equal(t, entity.MovementAdjustmentSub, k.MovementKind())
	}
}

// TestAdjustmentKindApply la sustracción por encima de lo disponible deja el
// stock en cero, no falla ni queda negativo.
func TestAdjustmentKindApply(t *testing.T) {
	before := decimal.NewFromInt(10)

	after := entity.AdjustmentFound.Apply(before, decimal.NewFromInt(5))
	assert.True(t, after.Equal(decimal.NewFromInt(15)))

	after = entity.AdjustmentDamaged.Apply(before, decimal.NewFromInt(4))
	assert.True(t, after.Equal(decimal.NewFromInt(6)))

	// Tope en cero
	after = entity.AdjustmentLost.Apply(before, decimal.NewFromInt(25))
	assert.True(t, after.IsZero(), "restar más de lo que hay deja cero, no negativo")
}
