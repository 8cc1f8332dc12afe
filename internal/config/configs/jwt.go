package configs

import "time"

// JWT configures the identity token issuer. Tokens are signed with Secret
// and expire after TTLDays.
type JWT struct {
	Secret  string `env:"SECRET" envDefault:"dev-secret-change-me"`
	TTLDays int    `env:"TTL_DAYS" envDefault:"7"`
}

// TTL returns the token lifetime as a duration.
func (c JWT) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}
