// Package render defines the abstract renderer backend interface.
// Backends interpret the shading rule table against a session's
// buffers and camera; the session itself never touches a rendering
// API, so the engine logic stays testable without a GPU context.
package render

// Backend drives a session's continuous rendering for its lifetime.
type Backend interface {
	// Run blocks, rendering frames and feeding input into the bound
	// session until Close is called or the surface is destroyed. All
	// resources acquired by the backend are released before Run
	// returns, on every exit path.
	Run() error

	// Close requests shutdown. The in-flight frame completes and the
	// frame callback is cancelled before any resource is released.
	Close()
}
