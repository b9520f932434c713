package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// TestCanTransition recorre la tabla completa de estados: solo las
// transiciones listadas son válidas y los estados terminales no tienen
// salida.
func TestCanTransition(t *testing.T) {
	allowed := map[[2]entity.OrderStatus]bool{
		{entity.OrderPending, entity.OrderConfirmed}:   true,
		{entity.OrderPending, entity.OrderCancelled}:   true,
		{entity.OrderConfirmed, entity.OrderShipping}:  true,
		{entity.OrderConfirmed, entity.OrderCancelled}: true,
		{entity.OrderShipping, entity.OrderCompleted}:  true,
	}

	all := []entity.OrderStatus{
		entity.OrderPending, entity.OrderConfirmed, entity.OrderShipping,
		entity.OrderCompleted, entity.OrderCancelled,
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]entity.OrderStatus{from, to}]
			assert.Equal(t, want, entity.CanTransition(from, to),
				"transición %s -> %s", from, to)
		}
	}
}

func TestCanTransitionTerminales(t *testing.T) {
	for _, terminal := range []entity.OrderStatus{entity.OrderCompleted, entity.OrderCancelled} {
		for _, to := range []entity.OrderStatus{
			entity.OrderPending, entity.OrderConfirmed, entity.OrderShipping,
			entity.OrderCompleted, entity.OrderCancelled,
		} {
			assert.False(t, entity.CanTransition(terminal, to),
				"%s es terminal, no debe salir hacia %s", terminal, to)
		}
	}
}
