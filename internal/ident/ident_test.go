package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_Deterministic(t *testing.T) {
	a := For("Brand", "acme")
	b := For("Brand", "acme")
	assert.Equal(t, a, b)

	// Must be a well-formed UUID.
	require.Len(t, a, 36)
	assert.Equal(t, "5", a[14:15], "expected a version 5 UUID")
}

func TestFor_KindNamespacing(t *testing.T) {
	assert.NotEqual(t, For("Brand", "pla"), For("MaterialFamily", "pla"))
	assert.NotEqual(t, For("Store", "acme"), For("Brand", "acme"))
}

func TestBrand_NormalizesKey(t *testing.T) {
	assert.Equal(t, Brand("Acme"), Brand("  acme  "))
	assert.Equal(t, Brand("ACME"), Brand("acme"))
}

func TestMaterialFamily_NormalizesKey(t *testing.T) {
	assert.Equal(t, MaterialFamily("pla"), MaterialFamily(" PLA "))
}

func TestStore_CaseFolded(t *testing.T) {
	assert.Equal(t, Store("Printed Solid"), Store("printed solid"))
}

func TestFilament_PathKeyed(t *testing.T) {
	a := Filament("Acme/PLA/Classic")
	b := Filament("Acme/PLA/Matte")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Filament("Acme/PLA/Classic"))
}
