package gxp

import (
	"errors"
	"sync/atomic"
)

// apiInitialized guards the process-wide initialize/uninitialize bracket.
var apiInitialized atomic.Bool

// Api represents the process-wide SOCET GXP API context. It must be acquired
// exactly once before any workstation call and released exactly once after
// all calls complete. Concurrent managers are unsupported.
type Api struct {
	released bool
}

// InitializeApi acquires the process-wide API context. It fails if the
// context is already held.
func InitializeApi() (*Api, error) {
	if !apiInitialized.CompareAndSwap(false, true) {
		return nil, errors.New("gxp: API already initialized")
	}
	return &Api{}, nil
}

// Uninitialize releases the API context. Safe to call more than once on the
// same handle; only the first call releases.
func (a *Api) Uninitialize() {
	if a == nil || a.released {
		return
	}
	a.released = true
	apiInitialized.Store(false)
}

// NewManager creates a connection manager bound to this API context.
func (a *Api) NewManager(t Transport) *Manager {
	return &Manager{transport: t}
}
