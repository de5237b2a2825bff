package greenit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

func TestDatacenterCalculate(t *testing.T) {
	calc := DefaultDatacenterInput().Calculate(DefaultSettings(), testNow)

	assert.Equal(t, SlotDatacenter, calc.Slot)
	assert.InDelta(t, 3024.0, calc.Result.Energy, 1e-6)
	assert.InDelta(t, 1512.0, calc.Result.Carbon, 1e-6)
	require.NotNil(t, calc.Result.Cost)
	assert.InDelta(t, 453.6, *calc.Result.Cost, 1e-6)
	assert.Nil(t, calc.Result.Efficiency)
	assert.Equal(t, QualityMeasured, calc.Result.Quality)
	assert.Equal(t, testNow, calc.Result.Timestamp)

	rounded := calc.Result.Rounded()
	assert.InDelta(t, 454.0, *rounded.Cost, 1e-9)
	assert.InDelta(t, 453.6, *calc.Result.Cost, 1e-6, "rounding does not alias the original")

	require.Len(t, calc.Suggestions, 3)
	assert.Equal(t, "Optimiser le PUE", calc.Suggestions[0].Title)
	assert.InDelta(t, 453.6, calc.Suggestions[0].Savings, 1e-6)
	assert.Contains(t, calc.Suggestions[0].Impact, "454 kWh/mois")
	assert.Equal(t, PriorityMedium, calc.Suggestions[1].Priority)
	assert.InDelta(t, 604.8, calc.Suggestions[1].Savings, 1e-6)
	assert.InDelta(t, 1360.8, calc.Suggestions[2].Savings, 1e-6)
}

func TestDatacenterCalculate_Variants(t *testing.T) {
	t.Run("renewable liquid low PUE has no suggestions", func(t *testing.T) {
		in := DefaultDatacenterInput()
		in.PUE = 1.2
		in.CoolingType = "liquid"
		in.EnergySource = "renewable"
		calc := in.Calculate(DefaultSettings(), testNow)
		assert.Empty(t, calc.Suggestions)
		assert.InDelta(t, 2419.2*0.05, calc.Result.Carbon, 1e-6)
	})

	t.Run("zero PUE and uptime use defaults", func(t *testing.T) {
		in := DefaultDatacenterInput()
		in.PUE = 0
		in.Uptime = 0
		calc := in.Calculate(DefaultSettings(), testNow)
		assert.InDelta(t, 3024.0, calc.Result.Energy, 1e-6)
		assert.Equal(t, QualityDefaulted, calc.Result.Quality)
		assert.Len(t, calc.Result.Issues, 2)
	})

	t.Run("unknown source falls back to grid", func(t *testing.T) {
		in := DefaultDatacenterInput()
		in.EnergySource = "nuclear"
		calc := in.Calculate(DefaultSettings(), testNow)
		assert.InDelta(t, 1512.0, calc.Result.Carbon, 1e-6)
		assert.Equal(t, QualityDefaulted, calc.Result.Quality)
	})

	t.Run("energy price drives cost", func(t *testing.T) {
		settings := DefaultSettings()
		settings.EnergyPrice = 0.2
		calc := DefaultDatacenterInput().Calculate(settings, testNow)
		assert.InDelta(t, 604.8, calc.Result.CostValue(), 1e-6)
	})

	t.Run("cpu usage clamps to 100", func(t *testing.T) {
		in := DefaultDatacenterInput()
		in.CPUUsage = 250
		calc := in.Calculate(DefaultSettings(), testNow)
		assert.InDelta(t, 4320.0, calc.Result.Energy, 1e-6)
	})
}

func TestCloudCalculate(t *testing.T) {
	calc := DefaultCloudInput().Calculate(DefaultSettings(), testNow)

	require.Len(t, calc.Result.Components, 3)
	assert.InDelta(t, 5.4, calc.Result.Components[0].Energy, 1e-9)
	assert.InDelta(t, 4.68, calc.Result.Components[1].Energy, 1e-9)
	assert.InDelta(t, 0.003, calc.Result.Components[2].Energy, 1e-12)
	assert.InDelta(t, 10.083, calc.Result.Energy, 1e-9)
	assert.InDelta(t, 3.0249, calc.Result.Carbon, 1e-9)
	assert.InDelta(t, 1.81494, calc.Result.CostValue(), 1e-9)
	assert.Empty(t, calc.Suggestions)

	t.Run("unknown instance contributes nothing", func(t *testing.T) {
		in := DefaultCloudInput()
		in.ComputeType = "x9.mega"
		calc := in.Calculate(DefaultSettings(), testNow)
		assert.InDelta(t, 0.0, calc.Result.Components[0].Energy, 1e-12)
		assert.InDelta(t, 4.683, calc.Result.Energy, 1e-9)
		assert.Equal(t, QualityDefaulted, calc.Result.Quality)
	})
}

func TestDevelopmentCalculate(t *testing.T) {
	calc := DefaultDevelopmentInput().Calculate(DefaultSettings(), testNow)

	assert.InDelta(t, 114.4, calc.Result.Components[0].Energy, 1e-9)
	assert.InDelta(t, 22.0, calc.Result.Components[1].Energy, 1e-9)
	assert.InDelta(t, 27.5, calc.Result.Components[2].Energy, 1e-9)
	assert.InDelta(t, 163.9, calc.Result.Energy, 1e-9)
	assert.InDelta(t, 81.95, calc.Result.Carbon, 1e-9)
	require.NotNil(t, calc.Result.Efficiency)
	assert.InDelta(t, 9.0, *calc.Result.Efficiency, 1e-9)
	assert.Nil(t, calc.Result.Cost)

	require.Len(t, calc.Suggestions, 1)
	assert.Equal(t, "Green Coding", calc.Suggestions[0].Title)

	t.Run("busy pipelines trigger recommendations", func(t *testing.T) {
		in := DefaultDevelopmentInput()
		in.BuildsPerDay = 31
		in.TestsPerDay = 51
		calc := in.Calculate(DefaultSettings(), testNow)
		require.Len(t, calc.Suggestions, 3)
		assert.Equal(t, "Optimiser les Builds", calc.Suggestions[0].Title)
		assert.Equal(t, "Tests Parallèles", calc.Suggestions[1].Title)
		assert.Equal(t, "Green Coding", calc.Suggestions[2].Title)
	})

	t.Run("no energy means zero efficiency", func(t *testing.T) {
		calc := DevelopmentInput{WorkstationType: "laptop"}.Calculate(DefaultSettings(), testNow)
		assert.Zero(t, calc.Result.Energy)
		assert.Zero(t, *calc.Result.Efficiency)
	})
}

func TestNetworkCalculate(t *testing.T) {
	calc := DefaultNetworkInput().Calculate(DefaultSettings(), testNow)

	assert.InDelta(t, 1438.632, calc.Result.Energy, 1e-6)
	assert.InDelta(t, 719.316, calc.Result.Carbon, 1e-6)
	require.NotNil(t, calc.Result.Efficiency)
	assert.InDelta(t, 13.93, *calc.Result.Efficiency, 1e-9)
	assert.Equal(t, QualityMeasured, calc.Result.Quality)

	t.Run("idle floor", func(t *testing.T) {
		in := NetworkInput{WiFiCount: 10, PeakHours: 8}
		calc := in.Calculate(DefaultSettings(), testNow)
		// 150 W * 0.3 * 720 h / 1000
		assert.InDelta(t, 32.4, calc.Result.Energy, 1e-9)
		assert.Zero(t, *calc.Result.Efficiency)
	})
}

func TestGridCalculators_IgnoreSettingsCarbonFactor(t *testing.T) {
	settings := DefaultSettings()
	settings.CarbonFactor = 2

	dev := DefaultDevelopmentInput().Calculate(settings, testNow)
	assert.InDelta(t, 81.95, dev.Result.Carbon, 1e-9)

	network := DefaultNetworkInput().Calculate(settings, testNow)
	assert.InDelta(t, 719.316, network.Result.Carbon, 1e-6)
}

func TestParseForm(t *testing.T) {
	t.Run("datacenter lenient parsing", func(t *testing.T) {
		in := ParseDatacenterForm(map[string]string{
			"server-count":  "12abc",
			"server-type":   "blade",
			"cpu-usage":     "fifty",
			"power-rating":  "300",
			"cooling-type":  "liquid",
			"pue":           "1,3",
			"uptime":        "",
			"energy-source": "mixed",
		})
		assert.Equal(t, 12, in.ServerCount)
		assert.Equal(t, 0, in.CPUUsage)
		assert.InDelta(t, 1.3, in.PUE, 1e-9)
		assert.Equal(t, DefaultUptimeHours, in.Uptime)
		require.Len(t, in.Issues, 2)
		assert.Equal(t, "cpu-usage", in.Issues[0].Field)
		assert.Equal(t, "uptime", in.Issues[1].Field)

		calc := in.Calculate(DefaultSettings(), testNow)
		assert.Equal(t, QualityDefaulted, calc.Result.Quality)
		assert.Zero(t, calc.Result.Energy)
	})

	t.Run("dispatch", func(t *testing.T) {
		for _, slot := range Slots() {
			in, err := ParseForm(slot, map[string]string{})
			require.NoError(t, err)
			assert.Equal(t, slot, in.Slot())
		}
		_, err := ParseForm("mainframe", nil)
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})
}

func TestDefaultInput(t *testing.T) {
	for _, slot := range Slots() {
		in, err := DefaultInput(slot)
		require.NoError(t, err)
		assert.Equal(t, slot, in.Slot())
	}
	_, err := DefaultInput("other")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("network")
	require.NoError(t, err)
	assert.Equal(t, SlotNetwork, s)
	assert.Equal(t, "Réseau", s.Label())

	_, err = ParseSlot("Network")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestCalculations_WithReplaces(t *testing.T) {
	var c Calculations
	c = c.With(SlotCloud, Result{Energy: 1, Carbon: 1})
	c2 := c.With(SlotCloud, Result{Energy: 5})
	assert.InDelta(t, 1.0, c.Cloud.Energy, 1e-9, "original untouched")
	assert.InDelta(t, 5.0, c2.Cloud.Energy, 1e-9)
	assert.Zero(t, c2.Cloud.Carbon, "replaced, not merged")
	assert.Nil(t, c2.Without(SlotCloud).Get(SlotCloud))
}
