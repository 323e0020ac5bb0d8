// Package actor models the identity and role of the user performing an
// operation. Roles form a closed variant (dispatcher, technician) so that the
// access policy in the services package can be written and tested as a total
// function over role and order state.
//
// This package never issues or validates credentials; the authentication
// collaborator resolves the (identity, role) pair before it reaches this core.
package actor
