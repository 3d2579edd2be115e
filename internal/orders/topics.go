package orders

import "strconv"

const (
	TopicOrderUpdated       = "backoffice.order.updated"
	TopicOrderStatusChanged = "backoffice.order.status"
	TopicOrderReordered     = "backoffice.order.reordered"
	TopicOrderDeleted       = "backoffice.order.deleted"
)

// Partition key = order id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
