package configs

// Otel configures trace export. Tracing is skipped entirely when Enabled
// is false, which is the default for local development.
type Otel struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Endpoint string `env:"EXPORTER_ENDPOINT" envDefault:"localhost:4317"`
}
