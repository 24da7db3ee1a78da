package api

// APIResponse is the envelope returned by every diagnostics endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the diagnostics HTTP server
// (SPEC_FULL.md §4.J). It is entirely separate from the wire protocol's
// own TCP listener.
type ServerConfig struct {
	Bind string
}
