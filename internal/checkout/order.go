package checkout

import (
	"math/rand/v2"
	"time"
)

// OrderNumberPrefix is the literal prefix of every generated order number.
const OrderNumberPrefix = "ORD-"

// deliveryLeadTime is added to the placement time for the estimated
// delivery date.
const deliveryLeadTime = 5 * 24 * time.Hour

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Order carries the confirmation-screen artifacts. These are presentation
// values generated on reaching Confirmation, not persisted records.
type Order struct {
	Number            string
	PlacedAt          time.Time
	EstimatedDelivery time.Time
}

// NewOrder mints the confirmation artifacts for an order placed at the
// given time.
func NewOrder(placedAt time.Time) *Order {
	return &Order{
		Number:            newOrderNumber(),
		PlacedAt:          placedAt,
		EstimatedDelivery: placedAt.Add(deliveryLeadTime),
	}
}

// newOrderNumber generates ORD- followed by 9 random base-36 characters,
// uppercased.
func newOrderNumber() string {
	buf := make([]byte, 0, len(OrderNumberPrefix)+9)
	buf = append(buf, OrderNumberPrefix...)
	for i := 0; i < 9; i++ {
		buf = append(buf, base36[rand.IntN(len(base36))])
	}
	return string(buf)
}
