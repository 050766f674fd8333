package types

// ErrorEnvelope is the wire shape of every failed response. The message is
// stable enough for clients to branch on; internals never leak into it.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
