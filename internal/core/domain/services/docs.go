// Package services contains stateless domain services that operate across
// aggregates: the progress calculator deriving fulfillment percentages from
// order and task state, and the pricing calculator quoting tax and shipping
// charges.
package services
