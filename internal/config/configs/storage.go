package configs

import "fmt"

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Storage selects where campaigns, applications and memberships live. The
// memory driver keeps everything in process and is meant for local runs.
type Storage struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
}

// Validate rejects unknown drivers.
func (c Storage) Validate() error {
	switch c.Driver {
	case StoragePostgres, StorageMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}
