package gxp

import "context"

// Manager is one caller-owned connection session to the SOCET GXP
// workstation. The lifecycle is strictly sequential:
// InitializeApi → Connect → (use) → Disconnect → Uninitialize.
type Manager struct {
	transport Transport
	connected bool
}

// Connect opens the session. The returned CommStatus reports the transport
// outcome and the ApiStatus reports the workstation's own reply; either can
// fail independently and both are meaningful to the classifier.
func (m *Manager) Connect(ctx context.Context) (CommStatus, ApiStatus) {
	api, err := m.transport.Connect(ctx)
	if err != nil {
		return CommFailure, api
	}
	m.connected = true
	return CommOK, api
}

// Disconnect closes the session. It is safe to call after a failed Connect;
// teardown is unconditional.
func (m *Manager) Disconnect() {
	if m.connected {
		m.connected = false
	}
	_ = m.transport.Disconnect()
}
