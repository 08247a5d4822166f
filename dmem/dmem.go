// Package dmem registers the direct-memory DAP transport.
package dmem

import (
	"github.com/hexdbg/memdap/adapter"
	"github.com/hexdbg/memdap/config"
	internal "github.com/hexdbg/memdap/internal/dmem"
)

// Name is the transport's registry name.
const Name = "dmem"

var _ = adapter.Register(Name, internal.New)

// New builds the transport directly, without going through the registry.
func New(cfg *config.Config) (adapter.Driver, error) {
	return internal.New(cfg)
}
