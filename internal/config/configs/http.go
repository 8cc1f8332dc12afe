package configs

// HTTP configures the API server listener. Port defaults to 7000 to match
// the port the dashboard expects.
type HTTP struct {
	Port uint16 `env:"PORT" envDefault:"7000"`
	// MaxBodyBytes caps the size of request bodies accepted by the API.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}
