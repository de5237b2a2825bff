package greenit

import (
	"fmt"
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/factors"
)

// Billing period used by every calculator.
const (
	HoursPerMonth    = 24 * 30
	WorkDaysPerMonth = 22
)

// Suggestion thresholds.
const (
	PUESuggestionThreshold   = 1.4
	BuildSuggestionThreshold = 30
	TestSuggestionThreshold  = 50
)

// Compile-time interface checks.
var (
	_ Input = DatacenterInput{}
	_ Input = CloudInput{}
	_ Input = DevelopmentInput{}
	_ Input = NetworkInput{}
)

func ptr(v float64) *float64 { return &v }

// Slot implements Input.
func (in DatacenterInput) Slot() Slot { return SlotDatacenter }

// Calculate runs the datacenter model: servers draw powerRating scaled by CPU
// usage, multiplied by PUE over the uptime of a 30-day month. The server and
// cooling types are recorded but do not enter the energy formula.
func (in DatacenterInput) Calculate(settings Settings, now time.Time) Calculation {
	s := &sanitizer{}
	count := s.count("serverCount", in.ServerCount)
	cpu := s.percent("cpuUsage", in.CPUUsage)
	power := s.count("powerRating", in.PowerRating)
	pue := s.positive("pue", in.PUE, DefaultPUE)
	uptime := s.positive("uptime", float64(in.Uptime), DefaultUptimeHours)
	if _, ok := factors.Server(in.ServerType); !ok && in.ServerType != "" {
		s.unknown("serverType", in.ServerType)
	}
	if _, ok := factors.CoolingOverhead(in.CoolingType); !ok && in.CoolingType != "" {
		s.unknown("coolingType", in.CoolingType)
	}
	intensity, fellBack := factors.CarbonIntensity(in.EnergySource)
	if fellBack {
		s.unknown("energySource", in.EnergySource)
	}

	draw := power * (cpu / 100) * count * pue
	energy := draw * uptime * 30 / 1000
	carbon := energy * intensity
	cost := energy * settings.EnergyPrice

	r := finish(Result{
		Energy:     energy,
		Carbon:     carbon,
		Cost:       ptr(cost),
		Timestamp:  now.UTC(),
		Components: []Component{{Name: "servers", Energy: energy}},
	}, in.Issues, s.issues)

	var suggestions []Suggestion
	if pue > PUESuggestionThreshold {
		suggestions = append(suggestions, Suggestion{
			Title:       "Optimiser le PUE",
			Description: fmt.Sprintf("Votre PUE de %g peut être amélioré. Objectif: < 1.3", pue),
			Impact:      fmt.Sprintf("Économie potentielle: %.0f kWh/mois", math.Round(energy*0.15)),
			Savings:     energy * 0.15,
			SavingsUnit: "kWh",
			Priority:    PriorityHigh,
		})
	}
	if in.CoolingType == "air" {
		suggestions = append(suggestions, Suggestion{
			Title:       "Refroidissement Liquide",
			Description: "Le refroidissement liquide peut réduire la consommation de 20%",
			Impact:      fmt.Sprintf("Économie: %.0f kWh/mois", math.Round(energy*0.2)),
			Savings:     energy * 0.2,
			SavingsUnit: "kWh",
			Priority:    PriorityMedium,
		})
	}
	if in.EnergySource != factors.SourceRenewable {
		suggestions = append(suggestions, Suggestion{
			Title:       "Énergie Renouvelable",
			Description: "Migrer vers une source d'énergie 100% renouvelable",
			Impact:      fmt.Sprintf("Réduction: %.0f kg CO₂/mois", math.Round(carbon*0.9)),
			Savings:     carbon * 0.9,
			SavingsUnit: "kg CO₂",
			Priority:    PriorityHigh,
		})
	}

	return Calculation{Slot: SlotDatacenter, Result: r, Suggestions: suggestions}
}

// Slot implements Input.
func (in CloudInput) Slot() Slot { return SlotCloud }

// Calculate runs the cloud model: instance compute plus storage plus transfer
// energy, with a fixed provider carbon intensity and a price markup. Unknown
// instance or storage types contribute zero energy.
func (in CloudInput) Calculate(settings Settings, now time.Time) Calculation {
	s := &sanitizer{}
	count := s.count("computeCount", in.ComputeCount)
	usage := s.percent("computeUsage", in.ComputeUsage)
	size := s.count("storageSize", in.StorageSize)
	transfer := s.count("dataTransfer", in.DataTransfer)

	instance, ok := factors.CloudInstance(in.ComputeType)
	if !ok {
		s.unknown("computeType", in.ComputeType)
	}
	storage, ok := factors.CloudStorage(in.StorageType)
	if !ok {
		s.unknown("storageType", in.StorageType)
	}

	compute := instance.Power * count * (usage / 100) * HoursPerMonth / 1000
	stored := storage.Power * size * HoursPerMonth / 1000
	moved := factors.TransferPowerPerGB * transfer / 1000
	energy := compute + stored + moved

	r := finish(Result{
		Energy:    energy,
		Carbon:    energy * factors.CloudCarbonIntensity,
		Cost:      ptr(energy * settings.EnergyPrice * factors.CloudCostMarkup),
		Timestamp: now.UTC(),
		Components: []Component{
			{Name: "compute", Energy: compute},
			{Name: "storage", Energy: stored},
			{Name: "transfer", Energy: moved},
		},
	}, in.Issues, s.issues)

	return Calculation{Slot: SlotCloud, Result: r}
}

// Slot implements Input.
func (in DevelopmentInput) Slot() Slot { return SlotDevelopment }

// Calculate runs the development workflow model over 22 working days:
// workstation draw plus CI build and test runners.
func (in DevelopmentInput) Calculate(_ Settings, now time.Time) Calculation {
	s := &sanitizer{}
	devs := s.count("devCount", in.DevCount)
	hours := s.positive("workHours", float64(in.WorkHours), DefaultWorkHours)
	builds := s.count("buildsPerDay", in.BuildsPerDay)
	buildMin := s.count("buildDuration", in.BuildDuration)
	tests := s.count("testsPerDay", in.TestsPerDay)
	testMin := s.count("testDuration", in.TestDuration)

	power, ok := factors.WorkstationPower(in.WorkstationType)
	if !ok {
		s.unknown("workstationType", in.WorkstationType)
	}

	workstation := devs * power * hours * WorkDaysPerMonth / 1000
	build := builds * buildMin * factors.BuildPower * WorkDaysPerMonth / 60 / 1000
	test := tests * testMin * factors.TestPower * WorkDaysPerMonth / 60 / 1000
	energy := workstation + build + test

	efficiency := 0.0
	if energy > 0 {
		efficiency = math.Round((builds + tests) * WorkDaysPerMonth / energy)
	}

	r := finish(Result{
		Energy:     energy,
		Carbon:     energy * factors.GridIntensity(),
		Efficiency: ptr(efficiency),
		Timestamp:  now.UTC(),
		Components: []Component{
			{Name: "workstations", Energy: workstation},
			{Name: "builds", Energy: build},
			{Name: "tests", Energy: test},
		},
	}, in.Issues, s.issues)

	var suggestions []Suggestion
	if builds > BuildSuggestionThreshold {
		suggestions = append(suggestions, Suggestion{
			Title:       "Optimiser les Builds",
			Description: "Trop de builds par jour. Considérez la mise en cache et l'optimisation.",
			Impact:      "Réduction potentielle: 30% de l'énergie CI/CD",
		})
	}
	if tests > TestSuggestionThreshold {
		suggestions = append(suggestions, Suggestion{
			Title:       "Tests Parallèles",
			Description: "Exécuter les tests en parallèle pour réduire le temps total.",
			Impact:      "Gain de temps: 40-60%",
		})
	}
	suggestions = append(suggestions, Suggestion{
		Title:       "Green Coding",
		Description: "Adopter des pratiques de développement éco-responsable.",
		Impact:      "Réduction globale: 15-25%",
	})

	return Calculation{Slot: SlotDevelopment, Result: r, Suggestions: suggestions}
}

// Slot implements Input.
func (in NetworkInput) Slot() Slot { return SlotNetwork }

// Calculate runs the network model: nameplate draw of every device, scaled
// between a 30% idle floor and full load by utilization. Peak hours are
// recorded but do not enter the formula.
func (in NetworkInput) Calculate(_ Settings, now time.Time) Calculation {
	s := &sanitizer{}
	if in.PeakHours <= 0 {
		s.positive("peakHours", float64(in.PeakHours), DefaultPeakHours)
	}
	devices := []struct {
		field string
		kind  string
		count int
	}{
		{"wifiCount", "wifi", in.WiFiCount},
		{"switch24Count", "switch24", in.Switch24Count},
		{"switch48Count", "switch48", in.Switch48Count},
		{"routerAccessCount", "routerAccess", in.RouterAccessCount},
		{"routerCoreCount", "routerCore", in.RouterCoreCount},
		{"firewallCount", "firewall", in.FirewallCount},
		{"loadBalancerCount", "loadbalancer", in.LoadBalancerCount},
	}
	var nameplate, ports float64
	for _, d := range devices {
		n := s.count(d.field, d.count)
		nameplate += n * factors.EquipmentPower(d.kind)
		switch d.kind {
		case "switch24":
			ports += n * 24
		case "switch48":
			ports += n * 48
		}
	}
	util := s.percent("networkUtilization", in.Utilization)

	adjusted := nameplate * (0.3 + util/100*0.7)
	energy := adjusted * HoursPerMonth / 1000

	// 100 Mbps nominal per switch port.
	throughput := ports * 100
	efficiency := 0.0
	if nameplate > 0 {
		efficiency = math.Round(throughput/nameplate*100) / 100
	}

	r := finish(Result{
		Energy:     energy,
		Carbon:     energy * factors.GridIntensity(),
		Efficiency: ptr(efficiency),
		Timestamp:  now.UTC(),
		Components: []Component{{Name: "equipment", Energy: energy}},
	}, in.Issues, s.issues)

	return Calculation{Slot: SlotNetwork, Result: r}
}

// Calculate runs in and reports which slot it fills.
func Calculate(in Input, settings Settings, now time.Time) (Calculation, error) {
	if in == nil {
		return Calculation{}, fmt.Errorf("%w: nil input", ErrUnknownSlot)
	}
	return in.Calculate(settings, now), nil
}
