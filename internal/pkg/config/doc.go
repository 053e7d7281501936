// Package config holds the validated settings structs of the key
// service: EngineSettings for the RSA key engine and LoggerSettings for
// the logging surface. Validation runs through go-playground/validator
// so the settings contract and the engine constructor enforce the same
// bounds.
package config
