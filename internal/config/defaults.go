package config

// Default returns a new Config populated with nub's built-in defaults. A
// fresh copy is returned on every call; mutating it never affects later
// calls.
func Default() *Config {
	return &Config{
		Weights: Weights{
			Positional: 0.3,
			Grep:       1.0,
			Topology:   0.5,
		},
		Compression: Compression{
			DefaultBudget:     2000,
			MinLineChars:      160,
			Temperature:       0.5,
			DeduplicateNGrams: false,
		},
		Text: Text{
			SectionScore: 0.6,
			LineScore:    0.5,
		},
		IO: IO{
			MaxFileSize: 1 * 1024 * 1024,
			HeadBytes:   500 * 1024,
			TailBytes:   500 * 1024,
		},
	}
}
