// Package workorder contains the WorkOrder aggregate: the central entity of
// the field-service core, tracking a job from creation through a
// technician's claim to completion.
//
// The lifecycle is a three-state machine (pending, in_progress, completed)
// with a dispatcher-only override between the two open states. Completion is
// atomic: status, final captured data and the completion timestamp change
// together or not at all. Completed orders are immutable.
package workorder
