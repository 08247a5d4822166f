package adapter

import "github.com/hexdbg/memdap/config"

// Ctor builds a Driver from a fixed configuration.
type Ctor func(*config.Config) (Driver, error)

var driverMap = make(map[string]Ctor)

// Register records a named transport constructor. The first registration of
// a name wins.
func Register(name string, ctor Ctor) bool {
	if _, ok := driverMap[name]; ok {
		return false
	}
	driverMap[name] = ctor
	return true
}

// Open constructs the named transport.
func Open(name string, cfg *config.Config) (Driver, error) {
	if ctor, ok := driverMap[name]; ok {
		return ctor(cfg)
	}
	return nil, ErrDriverUnknown
}
