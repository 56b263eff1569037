package analytics

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const EMIT_TIMEOUT = 2 * time.Second

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes decision events to Kafka. A nil *Producer is valid and
// drops every event, so callers never need to check whether Kafka is set up.
type Producer struct {
	writer messageWriter
	now    func() time.Time
}

// NewProducer returns nil when no brokers are configured.
func NewProducer(brokers, topic string) *Producer {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		log.Println("[KAFKA] No brokers configured, analytics disabled")
		return nil
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	log.Printf("[KAFKA] Publishing decisions to %s on %v", topic, addrs)
	return &Producer{writer: w, now: time.Now}
}

func (p *Producer) Emit(event string, payload map[string]any) {
	if p == nil || p.writer == nil {
		return
	}
	msg := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		msg[k] = v
	}
	msg["event"] = event
	msg["ts"] = p.now().UTC()

	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[KAFKA] Could not encode %s event: %v", event, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), EMIT_TIMEOUT)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event), Value: b}); err != nil {
		log.Printf("[KAFKA] Emit error: %v", err)
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
