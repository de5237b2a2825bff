package greenit

import (
	"math"
	"strconv"
	"strings"
)

// Form field defaults applied when a value is missing, malformed or not positive.
const (
	DefaultPUE         = 1.5
	DefaultUptimeHours = 24
	DefaultWorkHours   = 8
	DefaultPeakHours   = 8
)

// DatacenterInput is the datacenter calculator form.
type DatacenterInput struct {
	ServerCount  int     `json:"serverCount"`
	ServerType   string  `json:"serverType"`
	CPUUsage     int     `json:"cpuUsage"`
	PowerRating  int     `json:"powerRating"`
	CoolingType  string  `json:"coolingType"`
	PUE          float64 `json:"pue"`
	Uptime       int     `json:"uptime"`
	EnergySource string  `json:"energySource"`

	Issues []InputIssue `json:"-"`
}

// CloudInput is the cloud calculator form.
type CloudInput struct {
	ComputeType  string `json:"computeType"`
	ComputeCount int    `json:"computeCount"`
	ComputeUsage int    `json:"computeUsage"`
	StorageType  string `json:"storageType"`
	StorageSize  int    `json:"storageSize"`
	DataTransfer int    `json:"dataTransfer"`

	Issues []InputIssue `json:"-"`
}

// DevelopmentInput is the development workflow calculator form.
type DevelopmentInput struct {
	DevCount        int    `json:"devCount"`
	WorkHours       int    `json:"workHours"`
	WorkstationType string `json:"workstationType"`
	BuildsPerDay    int    `json:"buildsPerDay"`
	BuildDuration   int    `json:"buildDuration"`
	TestsPerDay     int    `json:"testsPerDay"`
	TestDuration    int    `json:"testDuration"`

	Issues []InputIssue `json:"-"`
}

// NetworkInput is the network equipment calculator form.
type NetworkInput struct {
	WiFiCount         int `json:"wifiCount"`
	Switch24Count     int `json:"switch24Count"`
	Switch48Count     int `json:"switch48Count"`
	RouterAccessCount int `json:"routerAccessCount"`
	RouterCoreCount   int `json:"routerCoreCount"`
	FirewallCount     int `json:"firewallCount"`
	LoadBalancerCount int `json:"loadBalancerCount"`
	Utilization       int `json:"networkUtilization"`
	PeakHours         int `json:"peakHours"`

	Issues []InputIssue `json:"-"`
}

// DefaultDatacenterInput returns the form values restored by a reset.
func DefaultDatacenterInput() DatacenterInput {
	return DatacenterInput{
		ServerCount:  10,
		ServerType:   "rack",
		CPUUsage:     70,
		PowerRating:  400,
		CoolingType:  "air",
		PUE:          DefaultPUE,
		Uptime:       DefaultUptimeHours,
		EnergySource: "grid",
	}
}

// DefaultCloudInput returns the form values restored by a reset.
func DefaultCloudInput() CloudInput {
	return CloudInput{
		ComputeType:  "t3.micro",
		ComputeCount: 5,
		ComputeUsage: 60,
		StorageType:  "ssd",
		StorageSize:  1000,
		DataTransfer: 500,
	}
}

// DefaultDevelopmentInput returns the form values restored by a reset.
func DefaultDevelopmentInput() DevelopmentInput {
	return DevelopmentInput{
		DevCount:        10,
		WorkHours:       DefaultWorkHours,
		WorkstationType: "laptop",
		BuildsPerDay:    20,
		BuildDuration:   15,
		TestsPerDay:     50,
		TestDuration:    10,
	}
}

// DefaultNetworkInput returns the form values restored by a reset.
func DefaultNetworkInput() NetworkInput {
	return NetworkInput{
		WiFiCount:         50,
		Switch24Count:     10,
		Switch48Count:     5,
		RouterAccessCount: 3,
		RouterCoreCount:   2,
		FirewallCount:     2,
		LoadBalancerCount: 2,
		Utilization:       40,
		PeakHours:         DefaultPeakHours,
	}
}

// DefaultInput returns the reset form for slot.
func DefaultInput(slot Slot) (Input, error) {
	switch slot {
	case SlotDatacenter:
		return DefaultDatacenterInput(), nil
	case SlotCloud:
		return DefaultCloudInput(), nil
	case SlotDevelopment:
		return DefaultDevelopmentInput(), nil
	case SlotNetwork:
		return DefaultNetworkInput(), nil
	default:
		return nil, ErrUnknownSlot
	}
}

// form reads raw field values, recording an issue each time a default is used.
type form struct {
	values map[string]string
	issues []InputIssue
}

func (f *form) str(key, def string) string {
	v := strings.TrimSpace(f.values[key])
	if v == "" {
		f.issues = append(f.issues, InputIssue{Field: key, Reason: "missing", Default: def})
		return def
	}
	return v
}

// integer mirrors a lenient integer parse: a leading integer is accepted and
// trailing text ignored, anything else falls back to def.
func (f *form) integer(key string, def int) int {
	raw := strings.TrimSpace(f.values[key])
	if raw == "" {
		f.issues = append(f.issues, InputIssue{Field: key, Reason: "missing", Default: strconv.Itoa(def)})
		return def
	}
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		f.issues = append(f.issues, InputIssue{Field: key, Reason: "not a number", Default: strconv.Itoa(def)})
		return def
	}
	return n
}

func (f *form) float(key string, def float64) float64 {
	raw := strings.ReplaceAll(strings.TrimSpace(f.values[key]), ",", ".")
	d := strconv.FormatFloat(def, 'f', -1, 64)
	if raw == "" {
		f.issues = append(f.issues, InputIssue{Field: key, Reason: "missing", Default: d})
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		f.issues = append(f.issues, InputIssue{Field: key, Reason: "not a number", Default: d})
		return def
	}
	return v
}

// ParseDatacenterForm builds a DatacenterInput from raw form values keyed by
// field id (server-count, server-type, cpu-usage, power-rating, cooling-type,
// pue, uptime, energy-source).
func ParseDatacenterForm(values map[string]string) DatacenterInput {
	f := &form{values: values}
	in := DatacenterInput{
		ServerCount:  f.integer("server-count", 0),
		ServerType:   f.str("server-type", "rack"),
		CPUUsage:     f.integer("cpu-usage", 0),
		PowerRating:  f.integer("power-rating", 0),
		CoolingType:  f.str("cooling-type", "air"),
		PUE:          f.float("pue", DefaultPUE),
		Uptime:       f.integer("uptime", DefaultUptimeHours),
		EnergySource: f.str("energy-source", "grid"),
	}
	in.Issues = f.issues
	return in
}

// ParseCloudForm builds a CloudInput from raw form values.
func ParseCloudForm(values map[string]string) CloudInput {
	f := &form{values: values}
	in := CloudInput{
		ComputeType:  f.str("compute-type", "t3.micro"),
		ComputeCount: f.integer("compute-count", 0),
		ComputeUsage: f.integer("compute-usage", 0),
		StorageType:  f.str("storage-type", "ssd"),
		StorageSize:  f.integer("storage-size", 0),
		DataTransfer: f.integer("data-transfer", 0),
	}
	in.Issues = f.issues
	return in
}

// ParseDevelopmentForm builds a DevelopmentInput from raw form values.
func ParseDevelopmentForm(values map[string]string) DevelopmentInput {
	f := &form{values: values}
	in := DevelopmentInput{
		DevCount:        f.integer("dev-count", 0),
		WorkHours:       f.integer("work-hours", DefaultWorkHours),
		WorkstationType: f.str("workstation-type", "laptop"),
		BuildsPerDay:    f.integer("builds-per-day", 0),
		BuildDuration:   f.integer("build-duration", 0),
		TestsPerDay:     f.integer("tests-per-day", 0),
		TestDuration:    f.integer("test-duration", 0),
	}
	in.Issues = f.issues
	return in
}

// ParseNetworkForm builds a NetworkInput from raw form values.
func ParseNetworkForm(values map[string]string) NetworkInput {
	f := &form{values: values}
	in := NetworkInput{
		WiFiCount:         f.integer("wifi-count", 0),
		Switch24Count:     f.integer("switch24-count", 0),
		Switch48Count:     f.integer("switch48-count", 0),
		RouterAccessCount: f.integer("router-access-count", 0),
		RouterCoreCount:   f.integer("router-core-count", 0),
		FirewallCount:     f.integer("firewall-count", 0),
		LoadBalancerCount: f.integer("loadbalancer-count", 0),
		Utilization:       f.integer("network-utilization", 0),
		PeakHours:         f.integer("peak-hours", DefaultPeakHours),
	}
	in.Issues = f.issues
	return in
}

// ParseForm dispatches to the form parser of slot.
func ParseForm(slot Slot, values map[string]string) (Input, error) {
	switch slot {
	case SlotDatacenter:
		return ParseDatacenterForm(values), nil
	case SlotCloud:
		return ParseCloudForm(values), nil
	case SlotDevelopment:
		return ParseDevelopmentForm(values), nil
	case SlotNetwork:
		return ParseNetworkForm(values), nil
	default:
		return nil, ErrUnknownSlot
	}
}

// sanitizer clamps typed input into the calculators' domain.
type sanitizer struct {
	issues []InputIssue
}

func (s *sanitizer) count(field string, v int) float64 {
	if v < 0 {
		s.issues = append(s.issues, InputIssue{Field: field, Reason: "negative", Default: "0"})
		return 0
	}
	return float64(v)
}

func (s *sanitizer) percent(field string, v int) float64 {
	switch {
	case v < 0:
		s.issues = append(s.issues, InputIssue{Field: field, Reason: "below 0%", Default: "0"})
		return 0
	case v > 100:
		s.issues = append(s.issues, InputIssue{Field: field, Reason: "above 100%", Default: "100"})
		return 100
	}
	return float64(v)
}

func (s *sanitizer) positive(field string, v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		s.issues = append(s.issues, InputIssue{Field: field, Reason: "not positive", Default: strconv.FormatFloat(def, 'f', -1, 64)})
		return def
	}
	return v
}

func (s *sanitizer) unknown(field, value string) {
	s.issues = append(s.issues, InputIssue{Field: field, Reason: "unknown value " + strconv.Quote(value)})
}

// finish stamps quality and issues onto r.
func finish(r Result, parsed, sanitized []InputIssue) Result {
	issues := make([]InputIssue, 0, len(parsed)+len(sanitized))
	issues = append(issues, parsed...)
	issues = append(issues, sanitized...)
	r.Quality = QualityMeasured
	if len(issues) > 0 {
		r.Quality = QualityDefaulted
		r.Issues = issues
	}
	return r
}
