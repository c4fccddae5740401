// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published whenever a reservation moves through its
// lifecycle (confirmed, completed, cancelled). It carries enough context
// for downstream consumers (notifications, analytics) without querying the
// primary database.
type ReservationEvent struct {
	ReservationID string `json:"reservation_id"`
	CarID         string `json:"car_id"`
	CarName       string `json:"car_name,omitempty"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
	PickupDate    string `json:"pickup_date"`
	ReturnDate    string `json:"return_date"`
	OccurredAt    string `json:"occurred_at"`
}

// QueueName is the durable queue reservation events are published to.
const QueueName = "reservation.events"
