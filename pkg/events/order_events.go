package events

import "time"

// OrderLine is one cart line as it leaves the conversation layer.
type OrderLine struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// NewOrderPlaced builds the event emitted when a customer confirms an
// order and supplies delivery details. Downstream fulfillment consumes
// it from the bus; the conversation layer forgets the cart afterwards.
func NewOrderPlaced(sessionID, customerDetails string, lines []OrderLine, total float64) Event {
	items := make([]map[string]interface{}, 0, len(lines))
	for _, l := range lines {
		items = append(items, map[string]interface{}{
			"product_name": l.ProductName,
			"quantity":     l.Quantity,
			"unit_price":   l.UnitPrice,
			"subtotal":     l.Subtotal,
		})
	}
	return BaseEvent{
		Type: "placed",
		Data: map[string]interface{}{
			"session_id":       sessionID,
			"customer_details": customerDetails,
			"items":            items,
			"total":            total,
		},
		OccurredAt: time.Now(),
	}
}
