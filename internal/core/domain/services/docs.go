// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the field-service system. It implements
// policy that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - AccessPolicy: role-based capability decisions for actors against orders
//   - AssignmentConstraint: the single-active-job rule for technicians
//   - FormBinding: authorization plus schema validation for captured-data writes
//
// Domain services coordinate between aggregates, implementing business logic
// that spans the work order, actor and template models.
package services
