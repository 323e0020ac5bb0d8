// Package kernel provides the core domain primitives shared by the
// field-service domain model.
//
// It currently contains a single value object, UUID, which enforces that
// identifiers are constructed (or restored) through validated factory
// functions and never used as zero values. Aggregates in the workorder and
// template packages build on it for identity and equality.
package kernel
