package config

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// Valid reports whether e is a known environment
func (e Environment) Valid() bool {
	switch e {
	case Development, Test, CI, Production:
		return true
	}
	return false
}

// IsDevelopment returns true if the configured environment is development
func (c *Config) IsDevelopment() bool {
	return c.Env == Development
}

// IsProduction returns true if the configured environment is production
func (c *Config) IsProduction() bool {
	return c.Env == Production
}
