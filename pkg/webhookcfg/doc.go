// Package webhookcfg wires github.com/caarlos0/env-backed process
// configuration (via core/config) to the webhook verification engine's
// constructor arguments, so a host can tune freshness tolerance, JWKS
// caching behavior, and JWKS fetch logging (via core/logger) from the
// environment without the engine itself touching os.Getenv or emitting log
// records of its own.
package webhookcfg
