// Package translator converts domain entities into API v1 DTOs and, for the
// payloads clients may send, back again.
//
// Every translator copies scalar fields unconditionally. Nested objects are
// only generated when a registry is supplied; RegisterAll wires the full set.
package translator
