package results

// ModalState is either Closed or Open on one card handle.
// Only one modal exists at a time; opening another replaces it.
type ModalState struct {
	handle Handle
}

// Closed is the state with no modal shown.
var Closed = ModalState{}

// Open returns the state showing the details of h.
func Open(h Handle) ModalState {
	return ModalState{handle: h}
}

// IsOpen reports whether a modal is shown.
func (m ModalState) IsOpen() bool {
	return m.handle != ""
}

// Handle returns the handle of the open modal, or "" when closed.
func (m ModalState) Handle() Handle {
	return m.handle
}

// Close returns the closed state and whether anything changed.
func (m ModalState) Close() (ModalState, bool) {
	return Closed, m.IsOpen()
}
