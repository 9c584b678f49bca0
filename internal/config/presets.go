package config

import (
	"sort"

	"github.com/san-kum/rocketsim/internal/vehicle"
)

// Preset returns the config for a named mission preset, or nil when no
// such preset exists.
func Preset(name string) *Config {
	build, ok := vehicle.Presets[name]
	if !ok {
		return nil
	}
	return FromMission(build())
}

// ListPresets returns the available preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(vehicle.Presets))
	for name := range vehicle.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
