// Package model contains the shared interfaces and data structures.
//
// # Criteria for adding a type to this package
//
// This package should contain two kinds of types:
//
// 1. interfaces shared by several packages within the codebase, whose
// purpose is to decouple unrelated code and make unit testing easier
// (e.g., the transport and the connectivity probe);
//
// 2. data shared across packages (e.g., the wire-level request).
//
// In general, this package should not contain logic, unless such
// logic is strictly related to the data structures defined here.
//
// # Content of this package
//
// - http.go: wire request and response, the transport capability,
// the HTTP client and the connectivity probe;
//
// - logger.go: generic definition of an apex/log compatible logger,
// used by every package that emits diagnostics.
package model
