package postgres

// dbObserver matches observability.Prom. Repos accept it as an interface so
// tests can pass nil and skip metrics.
type dbObserver interface {
	ObserveDB(op string, fn func() error) error
}

func observe(obs dbObserver, op string, fn func() error) error {
	if obs == nil {
		return fn()
	}
	return obs.ObserveDB(op, fn)
}
