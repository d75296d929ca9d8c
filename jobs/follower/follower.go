// Package follower consumes the mutation event topic and mirrors it
// into a replica tree. Readers that can tolerate replication lag can
// query the replica without touching the primary store.
package follower

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/segmentio/kafka-go"

	"arbor/bstree"
	"arbor/event"
)

type Follower struct {
	reader *kafka.Reader
	dec    event.Serializer

	mu      sync.Mutex
	replica *bstree.Tree[string, string]
	lastSeq uint64
}

func New(brokers []string, topic, group string, dec event.Serializer) *Follower {
	if dec == nil {
		dec = event.JSONSerializer{}
	}
	return &Follower{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: group,
		}),
		dec:     dec,
		replica: bstree.New[string, string](bstree.Ordered[string]()),
	}
}

// Run consumes until ctx is cancelled.
func (f *Follower) Run(ctx context.Context) error {
	log.Println("[follower] started")
	for {
		msg, err := f.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		ev, err := f.dec.Decode(msg.Value)
		if err != nil {
			log.Printf("[follower] skipping bad event at offset %d: %v", msg.Offset, err)
			continue
		}
		f.apply(ev)
	}
}

// apply mirrors one mutation. Events can arrive more than once
// (at-least-once delivery); replays of an already-seen sequence are
// dropped.
func (f *Follower) apply(ev *event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ev.Seq <= f.lastSeq {
		return
	}
	f.lastSeq = ev.Seq

	switch ev.Op {
	case event.OpInsert:
		f.replica.Insert(ev.Key, ev.Payload)
	case event.OpDelete:
		f.replica.Delete(ev.Key)
	default:
		log.Printf("[follower] unknown op %d for seq %d", ev.Op, ev.Seq)
	}
}

func (f *Follower) Search(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replica.Search(key)
}

func (f *Follower) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replica.Len()
}

func (f *Follower) LastSeq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSeq
}

func (f *Follower) Close() error {
	return f.reader.Close()
}
