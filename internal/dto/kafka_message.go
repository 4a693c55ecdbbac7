package dto

const EventPaymentStatusUpdated = "payment_status_updated"

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}
