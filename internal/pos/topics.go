package pos

import "strconv"

const (
	TopicOrderSettled = "pos.order.settled"
	TopicOrderVoided  = "pos.order.voided"
)

// Partition key = order id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
