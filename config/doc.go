// Package config exposes a parsed configuration file as a path-addressable view.
//
// A View wraps a backend and a position inside the backend's mapping. Paths
// are dot separated; a literal dot or backslash inside a key is escaped with a
// backslash:
//
//	v, err := config.Open("/etc/app.rc")
//	port, err := config.Int(v, "server.port")
//	dotted, err := v.Get(`hosts.www\.example\.com`)
//
// Getting a nested mapping returns another View over the same backend, so
// v.Get("a.b") and a Get("b") on the view returned by v.Get("a") reach the
// same value. Set and Delete change the shared mapping and then save it
// through the backend. A failed save, for example on a read-only dialect,
// leaves the in-memory change in place.
//
// # Typed access
//
// Value, Int, Float and Plain read typed values from any Source. Provider
// decodes a subtree into a struct using yaml struct tags:
//
//	type ServerConfig struct {
//		Host string `yaml:"host"`
//		Port int    `yaml:"port"`
//	}
//
//	server, err := config.Provider(&ServerConfig{}, "server")(v)
package config
