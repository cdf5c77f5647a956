package ncf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quimidom/quimidom-api/internal/domain/ncf"
)

// TestCompose_VectorExacto valida el formato exacto del NCF: prefijo del tipo
// más secuencial de 8 dígitos con ceros a la izquierda. Si alguien cambia el
// ancho del relleno o el orden de concatenación, este test falla de inmediato.
func TestCompose_VectorExacto(t *testing.T) {
	assert.Equal(t, "B0200001234", ncf.Compose("B02", 1234))
	assert.Equal(t, "B0100000001", ncf.Compose("B01", 1))
	assert.Equal(t, "B1599999999", ncf.Compose("B15", 99999999))
}

// TestCompose_NumeroMayorAlAncho verifica que un secuencial de más de 8 dígitos
// no se trunca (la DGII nunca autoriza rangos tan grandes, pero truncar sería peor).
func TestCompose_NumeroMayorAlAncho(t *testing.T) {
	assert.Equal(t, "B02100000000", ncf.Compose("B02", 100000000))
}

func TestIsValidType(t *testing.T) {
	for _, tipo := range []string{"B01", "B02", "B14", "B15"} {
		assert.True(t, ncf.IsValidType(tipo), "tipo %s debe ser válido", tipo)
	}
	for _, tipo := range []string{"", "B03", "b01", "E31", "B020"} {
		assert.False(t, ncf.IsValidType(tipo), "tipo %q no debe ser válido", tipo)
	}
}
