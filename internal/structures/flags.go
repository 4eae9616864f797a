package structures

import "net/http"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

// Route is one registered API endpoint. Handler already rejects methods
// other than Method.
type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}
