package config

import "sync/atomic"

// Holder publishes config snapshots. Writers swap a whole validated snapshot;
// readers take one snapshot per frame and never observe a partial update.
type Holder struct {
	current atomic.Pointer[Config]
}

// NewHolder creates a holder. A nil cfg is replaced by Default.
func NewHolder(cfg *Config) *Holder {
	if cfg == nil {
		cfg = Default()
	}

	h := &Holder{}
	h.current.Store(cfg)

	return h
}

// Load returns the current snapshot. Callers must not mutate it.
func (h *Holder) Load() *Config {
	return h.current.Load()
}

// Swap validates cfg and publishes it, returning the previous snapshot.
func (h *Holder) Swap(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return h.current.Swap(cfg), nil
}
