package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// La máquina de estados solo avanza: pending → partial|completed|denied y
// partial → completed. Todo lo demás está prohibido.
func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{entity.StatusPending, entity.StatusPartial},
		{entity.StatusPending, entity.StatusCompleted},
		{entity.StatusPending, entity.StatusDenied},
		{entity.StatusPartial, entity.StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, entity.CanTransition(tc[0], tc[1]), "%s → %s debe permitirse", tc[0], tc[1])
	}

	forbidden := [][2]string{
		{entity.StatusPartial, entity.StatusPending},
		{entity.StatusPartial, entity.StatusDenied},
		{entity.StatusCompleted, entity.StatusPending},
		{entity.StatusCompleted, entity.StatusPartial},
		{entity.StatusDenied, entity.StatusCompleted},
		{entity.StatusDenied, entity.StatusPending},
	}
	for _, tc := range forbidden {
		assert.False(t, entity.CanTransition(tc[0], tc[1]), "%s → %s debe rechazarse", tc[0], tc[1])
	}
}
