package config

import "os"

// Environment variables read by the loader. No other package reads the
// process environment.
const (
	EnvWallet        = "DERIVE_WALLET"
	EnvSignerKeyPath = "DERIVE_SIGNER_KEY_PATH"
	EnvConfigPath    = "BRIDGEMATRIX_CONFIG"
	EnvConcurrency   = "BRIDGEMATRIX_CONCURRENCY"
)

// Env looks up a variable, reporting whether it is set.
type Env func(key string) (string, bool)

// OSEnv returns the process environment.
func OSEnv() Env {
	return os.LookupEnv
}

// MapEnv returns an Env backed by a map.
func MapEnv(m map[string]string) Env {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// WithFallback returns an Env that consults e first and fallback second.
// Values from a .env file are layered this way so they never override the
// real environment.
func (e Env) WithFallback(fallback map[string]string) Env {
	return func(key string) (string, bool) {
		if v, ok := e(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

// get returns the value of key, treating unset and empty the same.
func (e Env) get(key string) string {
	if e == nil {
		return ""
	}
	v, _ := e(key)
	return v
}
