package orders

// ExtendedPrice returns price × quantity for one line. No clamping here —
// the edit boundary validates price ≥ 0 and quantity > 0 before calling.
func ExtendedPrice(price float64, quantity int) float64 {
	return price * float64(quantity)
}

// OrderTotal sums the extended price over all items. Returns 0 for an empty
// slice (only a transient state during editing; an order is never submitted
// with zero items).
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += ExtendedPrice(it.Price, it.Quantity)
	}
	return total
}

// Recalculate rewrites every derived field from its inputs: each item's
// TotalLine from Price×Quantity, then Total from the items. A stored total
// is never trusted; this runs after every mutation and before every submit.
func Recalculate(o *Order) {
	for i := range o.Items {
		o.Items[i].TotalLine = ExtendedPrice(o.Items[i].Price, o.Items[i].Quantity)
	}
	o.Total = OrderTotal(o.Items)
}
