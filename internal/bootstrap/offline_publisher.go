package bootstrap

import (
	"context"
	"errors"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/events"
)

// offlineOrderPublisher stands in for NATS when the connection could
// not be established at boot. Every publish fails, which the turn
// controller turns into "could not submit, try again" with the cart
// intact.
type offlineOrderPublisher struct{}

func (offlineOrderPublisher) Publish(ctx context.Context, event events.Event) error {
	return errors.New("order publisher offline")
}
