package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"light": preset(func(c *Config) {
		c.Pellets = 200
	}),
	"dense": preset(func(c *Config) {
		c.Pellets = 800
		c.Run.Seconds = 30.0
	}),
	"slick": preset(func(c *Config) {
		c.Pellets = 350
		c.Run.Gesture = "dump"
		c.Run.Seconds = 30.0
		c.Run.Loop = true
	}),
	"demo": preset(func(c *Config) {
		c.Pellets = 300
		c.Seed = 42
		c.Run.Gesture = "flatten"
		c.Run.Seconds = 0
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
