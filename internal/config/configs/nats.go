package configs

// NATS configures where recruitment events are published.
type NATS struct {
	URL           string `env:"URL"`
	SubjectPrefix string `env:"SUBJECT_PREFIX" envDefault:"recruitment"`
}

// Enabled reports whether a server is configured.
func (c NATS) Enabled() bool {
	return c.URL != ""
}
