package order

import (
	"fmt"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
)

// LineItem is one product line in a customer's cart. UnitPrice is the
// price that was valid when the product was added; subtotal is always
// quantity times that price.
type LineItem struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

// Cart is the authoritative order state for one session. It is not
// safe for concurrent use on its own, callers hold the session lock.
type Cart struct {
	SessionID string
	Items     []LineItem
}

func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID}
}

// Add merges into an existing line when the same product is added again,
// keeping the original unit price.
func (c *Cart) Add(productName string, quantity int, unitPrice float64) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Items {
		if strings.EqualFold(c.Items[i].ProductName, productName) {
			c.Items[i].Quantity += quantity
			c.Items[i].Subtotal = float64(c.Items[i].Quantity) * c.Items[i].UnitPrice
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    float64(quantity) * unitPrice,
	})
}

// Remove decrements a line by quantity and drops it at zero. It reports
// whether the product was in the cart at all.
func (c *Cart) Remove(productName string, quantity int) bool {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Items {
		if strings.EqualFold(c.Items[i].ProductName, productName) {
			c.Items[i].Quantity -= quantity
			if c.Items[i].Quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Subtotal = float64(c.Items[i].Quantity) * c.Items[i].UnitPrice
			}
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return total
}

// RenderLines formats the itemized listing used in order views.
func (c *Cart) RenderLines() string {
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf(constant.TemplateOrderLine,
			item.ProductName, item.UnitPrice, item.Quantity, item.Subtotal))
	}
	return strings.Join(lines, "\n")
}

// Render formats the full order view, or the empty-cart notice.
func (c *Cart) Render() string {
	if c.IsEmpty() {
		return constant.TemplateEmptyOrder
	}
	return fmt.Sprintf(constant.TemplateShowOrder, c.RenderLines(), c.Total())
}
