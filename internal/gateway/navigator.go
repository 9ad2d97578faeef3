package gateway

import "sync"

// LoginPath is where the client is sent after a 401.
const LoginPath = "/login"

// Navigator performs client-side navigation to an in-app path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Recorder is a Navigator that remembers every navigation. The CLI checks
// Last after a command to add a sign-in hint to the error.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// Navigate records path.
func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Paths returns a copy of the recorded navigations.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Last returns the most recent navigation or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}
