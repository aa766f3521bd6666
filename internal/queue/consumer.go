package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartNotificationConsumer connects to RabbitMQ and consumes the
// registration.confirmed and payment.processed queues, appending one
// human-readable line per message to logs/notifications.log.  It runs a
// reconnect loop with capped backoff and never returns under normal
// operation; processing errors reject the message without requeueing so a
// poison message cannot wedge the consumer.
func StartNotificationConsumer(url string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("notifications: dial broker failed: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("notifications: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("notifications: set QoS failed: %v", err)
	}

	var wg sync.WaitGroup
	for _, q := range []string{RegistrationConfirmedQueue, PaymentProcessedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare %s: %w", q, err)
		}
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", q, err)
		}
		wg.Add(1)
		go func(queueName string, deliveries <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range deliveries {
				if err := handleMessage(queueName, d.Body); err != nil {
					log.Printf("notifications: handle %s message failed: %v", queueName, err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}(q, msgs)
	}
	wg.Wait()
	return errors.New("delivery channels closed")
}

func handleMessage(queueName string, body []byte) error {
	var line string
	switch queueName {
	case RegistrationConfirmedQueue:
		var ev RegistrationConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Registration confirmed | event=%q (%s) | participant=%q (%s) | slots_left=%d\n",
			ev.RegisteredAt, ev.EventName, ev.EventID, ev.ParticipantName, ev.ParticipantID, ev.AvailableSlots)
	case PaymentProcessedQueue:
		var ev PaymentProcessedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Payment %s | payment=%s | ticket=%s | event=%s | method=%s | total=%d COP | auth=%s\n",
			ev.ProcessedAt, ev.Status, ev.PaymentID, ev.TicketID, ev.EventID, ev.Method, ev.TotalAmount, ev.AuthorizationCode)
	default:
		return fmt.Errorf("unknown queue %s", queueName)
	}
	return appendLine(line)
}

func appendLine(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "notifications.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
