package factors

import "sort"

// Carbon intensity sources in kg CO2 per kWh.
const (
	SourceGrid      = "grid"
	SourceRenewable = "renewable"
	SourceMixed     = "mixed"
	SourceCoal      = "coal"
)

// ServerProfile is the nominal draw and efficiency of a server form factor.
type ServerProfile struct {
	Power      float64 `json:"power"`
	Efficiency float64 `json:"efficiency"`
}

// CloudProfile is the power draw (W) and carbon (kg CO2 per hour) of a cloud
// instance, or per GB for storage tiers.
type CloudProfile struct {
	Power  float64 `json:"power"`
	Carbon float64 `json:"carbon"`
}

// CI/CD runner draw in watts.
const (
	BuildPower = 200.0
	TestPower  = 150.0
)

// Network transfer cost per GB.
const (
	TransferPowerPerGB  = 0.006
	TransferCarbonPerGB = 0.000003
)

// Fixed multipliers applied by the cloud calculator.
const (
	// CloudCarbonIntensity assumes providers run on a mixed supply.
	CloudCarbonIntensity = 0.3
	// CloudCostMarkup is applied on top of the raw energy price.
	CloudCostMarkup = 1.2
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	serverProfiles = map[string]ServerProfile{
		"rack":  {Power: 400, Efficiency: 0.85},
		"blade": {Power: 300, Efficiency: 0.90},
		"tower": {Power: 500, Efficiency: 0.80},
		"hpc":   {Power: 1500, Efficiency: 0.75},
	}

	coolingOverheads = map[string]float64{
		"air":       1.5,
		"liquid":    1.3,
		"immersion": 1.1,
		"free":      1.2,
	}

	cloudInstances = map[string]CloudProfile{
		"t3.micro":   {Power: 2.5, Carbon: 0.001},
		"t3.small":   {Power: 5, Carbon: 0.002},
		"m5.large":   {Power: 15, Carbon: 0.007},
		"c5.xlarge":  {Power: 25, Carbon: 0.012},
		"r5.2xlarge": {Power: 45, Carbon: 0.022},
	}

	cloudStorage = map[string]CloudProfile{
		"ssd":     {Power: 0.0065, Carbon: 0.000003},
		"hdd":     {Power: 0.004, Carbon: 0.000002},
		"archive": {Power: 0.0012, Carbon: 0.0000006},
	}

	workstations = map[string]float64{
		"laptop":      65,
		"desktop":     150,
		"workstation": 300,
		"mac":         100,
	}

	networkEquipment = map[string]float64{
		"wifi":         15,
		"switch24":     45,
		"switch48":     85,
		"routerAccess": 120,
		"routerCore":   350,
		"firewall":     180,
		"loadbalancer": 200,
	}

	carbonIntensity = map[string]float64{
		SourceGrid:      0.5,
		SourceRenewable: 0.05,
		SourceMixed:     0.3,
		SourceCoal:      0.9,
	}
)

// CarbonIntensity returns kg CO2 per kWh for source, falling back to grid.
func CarbonIntensity(source string) (float64, bool) {
	if v, ok := carbonIntensity[source]; ok {
		return v, false
	}
	return carbonIntensity[SourceGrid], true
}

// GridIntensity is the carbon intensity of the standard grid.
func GridIntensity() float64 {
	return carbonIntensity[SourceGrid]
}

// Server returns the profile for a server form factor.
func Server(kind string) (ServerProfile, bool) {
	p, ok := serverProfiles[kind]
	return p, ok
}

// CoolingOverhead returns the overhead multiplier for a cooling type.
func CoolingOverhead(kind string) (float64, bool) {
	v, ok := coolingOverheads[kind]
	return v, ok
}

// CloudInstance returns the profile for an instance type. Unknown types yield a
// zero profile and ok=false so they contribute nothing.
func CloudInstance(kind string) (CloudProfile, bool) {
	p, ok := cloudInstances[kind]
	return p, ok
}

// CloudStorage returns the per-GB profile for a storage tier.
func CloudStorage(kind string) (CloudProfile, bool) {
	p, ok := cloudStorage[kind]
	return p, ok
}

// WorkstationPower returns the draw in watts of a workstation type.
func WorkstationPower(kind string) (float64, bool) {
	v, ok := workstations[kind]
	return v, ok
}

// EquipmentPower returns the draw in watts of a network equipment type.
func EquipmentPower(kind string) float64 {
	return networkEquipment[kind]
}

// Keys lists the known identifiers for each table, sorted. Presenters use it
// to offer choices.
func Keys(table string) []string {
	var keys []string
	switch table {
	case "server":
		keys = mapKeys(serverProfiles)
	case "cooling":
		keys = mapKeys(coolingOverheads)
	case "instance":
		keys = mapKeys(cloudInstances)
	case "storage":
		keys = mapKeys(cloudStorage)
	case "workstation":
		keys = mapKeys(workstations)
	case "equipment":
		keys = mapKeys(networkEquipment)
	case "source":
		keys = mapKeys(carbonIntensity)
	}
	return keys
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
