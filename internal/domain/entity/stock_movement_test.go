package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

func TestMovementKindIsValid(t *testing.T) {
	valid := []entity.MovementKind{
		entity.MovementInbound, entity.MovementOutboundSale,
		entity.MovementTransferOut, entity.MovementTransferIn,
		entity.MovementAdjustmentAdd, entity.MovementAdjustmentSub,
		entity.MovementReturn, entity.MovementCountCorrection,
	}
	for _, k := range valid {
		assert.True(t, k.IsValid(), "%s debe ser válido", k)
	}
	assert.False(t, entity.MovementKind("PURCHASE").IsValid())
	assert.False(t, entity.MovementKind("").IsValid())
}

func TestMovementKindDirection(t *testing.T) {
	cases := map[entity.MovementKind]int{
		entity.MovementInbound:         1,
		entity.MovementTransferIn:      1,
		entity.MovementAdjustmentAdd:   1,
		entity.MovementReturn:          1,
		entity.MovementOutboundSale:    -1,
		entity.MovementTransferOut:     -1,
		entity.MovementAdjustmentSub:   -1,
		entity.MovementCountCorrection: 0, // el signo lo fija la reconciliación
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Direction(), "dirección de %s", kind)
	}
}
