package adapter

import "errors"

var (
	ErrDriverUnknown      = errors.New("adapter driver unknown")
	ErrNotReady           = errors.New("adapter not initialized")
	ErrUnknownRegister    = errors.New("unknown AP register")
	ErrExtendedAddressing = errors.New("ADIv6 extended addressing unsupported")
)
