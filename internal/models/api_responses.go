package models

// SubmitRequest is the body sent to the backend's submit endpoint.
type SubmitRequest struct {
	Pathway   string         `json:"pathway"`
	Responses map[string]any `json:"responses"`
}

// SubmitResponse is the backend's answer to a submission. Success and Message
// are kept loose so that an odd value reads as a rejection, not a broken body.
type SubmitResponse struct {
	Success         any              `json:"success"`
	Message         any              `json:"message,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Succeeded reports whether the backend answered success: true.
func (r SubmitResponse) Succeeded() bool {
	return isTrue(r.Success)
}

// Reason returns the backend's message when it sent a string.
func (r SubmitResponse) Reason() string {
	s, _ := r.Message.(string)
	return s
}

// SaveRequest is the body sent to the backend's save endpoint.
type SaveRequest struct {
	Pathway        string         `json:"pathway"`
	Recommendation Recommendation `json:"recommendation"`
}

// SaveResponse is the backend's answer to a save.
type SaveResponse struct {
	Success any `json:"success"`
	Message any `json:"message,omitempty"`
}

// Succeeded reports whether the backend answered success: true.
func (r SaveResponse) Succeeded() bool {
	return isTrue(r.Success)
}

// Reason returns the backend's message when it sent a string.
func (r SaveResponse) Reason() string {
	s, _ := r.Message.(string)
	return s
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
