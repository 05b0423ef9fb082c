package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
)

func TestResolveTrackingMode_LotePrevaleceSobreSerial(t *testing.T) {
	// Un producto marcado por lotes y serializado a la vez se maneja por lotes.
	assert.Equal(t, entity.TrackingBatch, movement.ResolveTrackingMode(true, true))
	assert.Equal(t, entity.TrackingBatch, movement.ResolveTrackingMode(true, false))
}

func TestResolveTrackingMode_SoloSerial(t *testing.T) {
	assert.Equal(t, entity.TrackingSerial, movement.ResolveTrackingMode(false, true))
}

func TestResolveTrackingMode_SinSeguimiento(t *testing.T) {
	assert.Equal(t, entity.TrackingNone, movement.ResolveTrackingMode(false, false))
}

func TestLineModeFor_Mapeo(t *testing.T) {
	assert.Equal(t, entity.LineModeBatch, movement.LineModeFor(entity.TrackingBatch))
	assert.Equal(t, entity.LineModeSerial, movement.LineModeFor(entity.TrackingSerial))
	assert.Equal(t, entity.LineModeNormal, movement.LineModeFor(entity.TrackingNone))
}
