// Package inventory contains the stock record for one SKU in one bin and the
// reservation arithmetic behind order creation and cancellation. Reserved
// quantity can never exceed on-hand quantity, so available stock is never
// negative.
package inventory
