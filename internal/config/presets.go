package config

var Presets = map[string]*Config{
	"brownian": {
		Horizon: 10000, Frequency: 0.5, Seed: 1, Count: 100,
		Tracer: TracerConfig{Enabled: true, Radius: DefaultTracerRadius, Mass: DefaultTracerMass},
	},
	"dilute": {
		Horizon: 20000, Frequency: 0.5, Seed: 1, Count: 20,
	},
	"dense": {
		Horizon: 5000, Frequency: 0.5, Seed: 1, Count: 400,
	},
	"billiards": {
		Horizon: 100, Frequency: 0.5,
		Particles: []ParticleConfig{
			{X: 0.25, Y: 0.5, VX: 0.02, VY: 0, Radius: 0.05, Mass: 1, Color: "white"},
			{X: 0.6, Y: 0.5, VX: 0, VY: 0, Radius: 0.05, Mass: 1, Color: "red"},
			{X: 0.72, Y: 0.56, VX: 0, VY: 0, Radius: 0.05, Mass: 1, Color: "yellow"},
			{X: 0.72, Y: 0.44, VX: 0, VY: 0, Radius: 0.05, Mass: 1, Color: "blue"},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
