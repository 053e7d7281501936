// Package keys defines the core contracts for the RSA key engine: the capability interface,
// the parameter exchange structure, scheme identifiers and the error taxonomy.
package keys
