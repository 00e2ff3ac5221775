// Package picktask contains the pick task entity: one unit of picking work
// generated per order item when an order is claimed. The task state machine
// (Pending, InProgress, Completed, Skipped) drives order-level picking
// progress and supports skip/revert and undo workflows.
package picktask
