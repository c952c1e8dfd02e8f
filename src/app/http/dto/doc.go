// Package dto contains the API v1 data transfer objects.
//
// DTOs are separate from domain entities to:
//   - Control what data is exposed in the API
//   - Handle JSON serialization/deserialization
//   - Version the API without changing domain models
//
// Every DTO follows the same contract:
//
//	Clone() *T           copy whose collections and nested DTOs are independent
//	Populate(src *T) *T  copy every field of src into the receiver
//	Equal(other *T) bool field-by-field equality
//
// Optional scalars are pointers so "unset" survives a round trip through
// JSON; strings use the empty string for "unset". Collections are nil until
// set, and a nil collection is distinct from an empty one on the wire only
// (Equal treats them alike).
//
// DTOs are filled from domain entities by the translators in
// src/app/http/translator.
package dto
