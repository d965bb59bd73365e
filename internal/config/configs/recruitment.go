package configs

import "fmt"

// Recruitment holds workflow defaults.
type Recruitment struct {
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"10"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" envDefault:"100"`
	// DefaultRole is granted on approval when the reviewer picks none.
	DefaultRole string `env:"DEFAULT_ROLE" envDefault:"member"`
}

// Validate checks page sizes and the default role.
func (c Recruitment) Validate() error {
	if c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("invalid page sizes: default %d, max %d", c.DefaultPageSize, c.MaxPageSize)
	}
	switch c.DefaultRole {
	case "member", "organizer":
		return nil
	default:
		return fmt.Errorf("default role %q cannot be assigned on approval", c.DefaultRole)
	}
}
