package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmissionFactor(t *testing.T) {
	tests := []struct {
		name         string
		category     string
		variant      string
		wantFactor   float64
		wantFellBack bool
		wantKnown    bool
	}{
		{"transport car", CategoryTransport, ModeCar, 0.21, false, true},
		{"transport train", CategoryTransport, ModeTrain, 0.04, false, true},
		{"transport default", CategoryTransport, "", 0.21, true, true},
		{"transport unknown mode", CategoryTransport, "rocket", 0.21, true, true},
		{"electricity", CategoryElectricity, "", 0.5, false, true},
		{"heating oil", CategoryHeating, HeatingOil, 0.25, false, true},
		{"heating default gas", CategoryHeating, "", 0.18, true, true},
		{"water", CategoryWater, "", 0.001, false, true},
		{"waste", CategoryWaste, "", 0.5, false, true},
		{"unknown category", "food", "", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, fb, known := EmissionFactor(tt.category, tt.variant)
			assert.InDelta(t, tt.wantFactor, f, 1e-12)
			assert.Equal(t, tt.wantFellBack, fb)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestCarbonIntensity(t *testing.T) {
	v, fb := CarbonIntensity(SourceRenewable)
	assert.InDelta(t, 0.05, v, 1e-12)
	assert.False(t, fb)

	v, fb = CarbonIntensity("nuclear")
	assert.InDelta(t, 0.5, v, 1e-12)
	assert.True(t, fb)
}

func TestLookups(t *testing.T) {
	p, ok := CloudInstance("t3.micro")
	assert.True(t, ok)
	assert.InDelta(t, 2.5, p.Power, 1e-12)

	p, ok = CloudInstance("x9.mega")
	assert.False(t, ok)
	assert.Zero(t, p.Power)

	s, ok := CloudStorage("ssd")
	assert.True(t, ok)
	assert.InDelta(t, 0.0065, s.Power, 1e-12)

	w, ok := WorkstationPower("mac")
	assert.True(t, ok)
	assert.InDelta(t, 100.0, w, 1e-12)

	assert.InDelta(t, 350.0, EquipmentPower("routerCore"), 1e-12)
	assert.Zero(t, EquipmentPower("modem"))

	srv, ok := Server("hpc")
	assert.True(t, ok)
	assert.InDelta(t, 1500.0, srv.Power, 1e-12)

	c, ok := CoolingOverhead("immersion")
	assert.True(t, ok)
	assert.InDelta(t, 1.1, c, 1e-12)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"coal", "grid", "mixed", "renewable"}, Keys("source"))
	assert.Len(t, Keys("instance"), 5)
	assert.Empty(t, Keys("nope"))
}

func TestCategoryHelpers(t *testing.T) {
	assert.Equal(t, []string{"transport", "electricity", "heating", "water", "waste"}, Categories())
	assert.True(t, IsCategory(CategoryWaste))
	assert.False(t, IsCategory("food"))
	assert.Equal(t, "Électricité", CategoryLabel(CategoryElectricity))
	assert.Equal(t, "liters", DefaultUnit(CategoryWater))
	assert.True(t, CountsAsEnergy(CategoryHeating))
	assert.False(t, CountsAsEnergy(CategoryTransport))
}
