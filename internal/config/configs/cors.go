package configs

// CORS lists the browser origins allowed to call the API with credentials.
// The defaults are the two origins the dashboard is served from.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:7000"`
}
