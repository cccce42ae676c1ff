package config

// Presets are ready-made configurations for common ways of running the
// simulation. Values not set here keep their zero value, not the
// defaults of DefaultConfig; presets are complete on purpose.
var Presets = map[string]*Config{
	"sandbox": {
		Width: DefaultWidth, Height: DefaultHeight,
		Distance: DefaultDistance, Time: DefaultTime,
		Oversampling: 256,
		Bounded:      true, Trajectory: true,
	},
	"orbital": {
		Width: DefaultWidth, Height: DefaultHeight,
		Distance: 2e-9, Time: 2e6,
		Oversampling:  DefaultOversampling,
		Trajectory:    true,
		EjectOutliers: true,
		RandomAnomaly: true,
	},
	"slow": {
		Width: DefaultWidth, Height: DefaultHeight,
		Distance: DefaultDistance, Time: 0.1,
		Oversampling: DefaultOversampling,
		Trajectory:   true,
	},
	"paused": {
		Width: DefaultWidth, Height: DefaultHeight,
		Distance: DefaultDistance, Time: DefaultTime,
		Oversampling: DefaultOversampling,
		Trajectory:   true, Pause: true,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
