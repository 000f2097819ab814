package domain

import "os"

// Settings is the user configuration after loading.
type Settings struct {
	// Provider is the value of deployment.name.
	Provider Provider
	// Section is the provider subsection of deployment: region, credentials, resources.
	Section map[string]any
	// Benchmark holds the defaults for deployed functions.
	Benchmark BenchmarkConfig
	// Env holds the variables read from the .env file next to the configuration.
	Env map[string]string
	// Path is the file the settings were read from.
	Path string
}

// LookupEnv returns the process variable key, falling back to the .env file.
// Variables set in the process always win.
func (s *Settings) LookupEnv(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := s.Env[key]
	return v, ok
}

// Overrides are command line values merged over the provider section.
type Overrides struct {
	Region string
}
