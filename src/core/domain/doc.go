// Package domain contains the persistence-side model of the entitlement server.
//
// This package defines:
//   - Entities: owners, consumers, products, content, pools, entitlements,
//     activation keys, roles, users, jobs and events
//   - Value objects: release versions, capabilities, branding, content overrides
//   - Domain errors: business rule violation errors
//
// Entities reference each other through pointers the way the storage layer
// hydrates them. The HTTP layer never exposes these types directly; the
// translators in src/app/http/translator copy them into DTOs.
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
package domain
