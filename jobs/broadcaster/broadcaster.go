// Package broadcaster drains the outbox and publishes mutation
// events to Kafka. Delivery is at-least-once: an entry is retried on
// the next pass until the broker acknowledges it.
package broadcaster

import (
	"context"
	"log"
	"time"

	"github.com/IBM/sarama"

	"arbor/infra/outbox"
)

type Config struct {
	Brokers  []string
	Topic    string
	Interval time.Duration
}

type Broadcaster struct {
	ob       *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(ob *outbox.Outbox, cfg Config) (*Broadcaster, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, err
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	return &Broadcaster{
		ob:       ob,
		producer: producer,
		topic:    cfg.Topic,
		interval: interval,
	}, nil
}

// ------------------------------------------------
// START LOOP
// ------------------------------------------------

func (b *Broadcaster) Start(ctx context.Context) {
	log.Println("[broadcaster] started")

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				b.publishOnce()
			}
		}
	}()
}

// ------------------------------------------------
// PUBLISH PASS
// ------------------------------------------------

func (b *Broadcaster) publishOnce() {
	_ = b.ob.ScanPending(func(seq uint64, e outbox.Entry) error {
		now := time.Now().UnixNano()
		_ = b.ob.MarkSent(seq, now)

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Value: sarama.ByteEncoder(e.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			_ = b.ob.MarkFailed(seq, now)
			return nil // retry on the next pass
		}

		_ = b.ob.MarkAcked(seq, now)
		return nil
	})
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
