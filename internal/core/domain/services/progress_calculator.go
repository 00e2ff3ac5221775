package services

import (
	"math"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picktask"
)

// ProgressCalculator is a domain service that derives an order's fulfillment
// progress percentage from its current status and workload. Progress is never
// stored; it is recomputed on every read so it can never drift from the
// underlying task and item state.
//
// Rules:
//   - Picking: completed tasks / total tasks
//   - Packing: fully picked items / total items
//   - Pending, Backorder, Cancelled: 0
//   - Picked, Packed, Shipped: 100
//
// Percentages are rounded to the nearest integer.
type ProgressCalculator struct{}

// NewProgressCalculator creates a new ProgressCalculator instance.
func NewProgressCalculator() ProgressCalculator {
	return ProgressCalculator{}
}

// Calculate returns the progress percentage for the order given its current
// pick task set. Tasks belonging to other orders are ignored.
func (p ProgressCalculator) Calculate(o *order.Order, tasks []*picktask.Task) (int, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	switch o.Status() {
	case order.Picking:
		return p.taskProgress(o, tasks), nil
	case order.Packing:
		return p.itemProgress(o), nil
	case order.Picked, order.Packed, order.Shipped:
		return 100, nil
	default:
		return 0, nil
	}
}

func (p ProgressCalculator) taskProgress(o *order.Order, tasks []*picktask.Task) int {
	var total, completed int
	for _, task := range tasks {
		if !task.OrderID().IsEqual(o.ID()) {
			continue
		}
		total++
		if task.Status() == picktask.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return percentage(completed, total)
}

func (p ProgressCalculator) itemProgress(o *order.Order) int {
	items := o.Items()
	if len(items) == 0 {
		return 0
	}

	var picked int
	for _, item := range items {
		if item.IsFullyPicked() {
			picked++
		}
	}
	return percentage(picked, len(items))
}

func percentage(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
