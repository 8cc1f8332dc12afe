package configs

// Redis configures the optional redis backend for the auth rate limiter.
// When Addr is empty the limiter falls back to an in-process window.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}
