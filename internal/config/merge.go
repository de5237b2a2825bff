package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for merge.
const (
	keyLogging = "logging"
	keyTracker = "tracker"
	keyGreenIT = "greenit"
	keyLedger  = "ledger"
	keyOutput  = "output"
)

// MergeYAML loads a YAML overlay file onto target. Only the fields present in
// the overlay change; unknown top-level keys are ignored. Environment
// overrides are re-applied afterwards so they keep precedence.
func MergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	// Decode onto a copy so a bad section leaves target untouched.
	next := *target
	for key, node := range overlay {
		if err = decodeSection(&next, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	next.applyEnv()
	*target = next
	return nil
}

func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyLogging:
		return node.Decode(&target.Logging)
	case keyTracker:
		return node.Decode(&target.Tracker)
	case keyGreenIT:
		return node.Decode(&target.GreenIT)
	case keyLedger:
		return node.Decode(&target.Ledger)
	case keyOutput:
		return node.Decode(&target.Output)
	default:
		return nil
	}
}
