package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/config"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/events"
	pktNats "github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/nats"

	"github.com/fatih/color"
)

// Fulfillment-side worker: drains confirmed orders from JetStream and
// prints them for the person packing boxes. The durable consumer means
// orders placed while the worker is down are delivered on restart.
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to NATS Subscriber: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("orders.placed", "fulfillment-printer", func(ctx context.Context, event events.Event) error {
		data := event.Payload()

		color.Cyan("── Nuevo pedido ──────────────────────────")
		color.White("Cliente: %v", data["session_id"])
		color.White("Entrega: %v", data["customer_details"])

		if items, ok := data["items"].([]interface{}); ok {
			for _, raw := range items {
				item, ok := raw.(map[string]interface{})
				if !ok {
					continue
				}
				color.Green("  %vx %v ($%v c/u)", item["quantity"], item["product_name"], item["unit_price"])
			}
		}
		color.Yellow("Total: $%v", data["total"])
		return nil
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to subscribe to orders: %v", err)
	}

	color.Cyan("Esperando pedidos confirmados...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down orders worker")
}
