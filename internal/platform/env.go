package platform

import "os"

// Environment provides read-only access to environment variables
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the real process environment
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is an in-memory Environment, mostly for tests
type MapEnv map[string]string

func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
