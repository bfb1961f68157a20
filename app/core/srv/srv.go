// Package srv hosts the long-lived service drivers a request handler pulls
// off the core: today that is the embedding provider.
package srv

type Srv struct {
	ai *AI
}

type ApplyFunc func(*Srv)

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Srv) AI() *AI {
	return s.ai
}
