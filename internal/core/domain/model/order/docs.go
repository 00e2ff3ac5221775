// Package order contains the Order aggregate: the root entity of the
// fulfillment domain together with its owned Item lines, priority, and the
// status state machine governing the claim/pick/pack/ship lifecycle.
//
// All state-changing methods validate transitions against the state machine
// and return *errs.ConflictError on violations, naming the attempted and
// current status. Monetary totals are computed once at construction and are
// never client-supplied.
package order
