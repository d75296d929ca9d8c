// Package event defines the mutation records the store emits and the
// serializers that put them on the wire.
package event

import "time"

// Op defines the mutation kind.
type Op uint8

const (
	OpInsert Op = iota
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is an immutable record of one store mutation.
type Event struct {
	Seq     uint64 `json:"seq"`
	Time    int64  `json:"time"`
	Op      Op     `json:"op"`
	Key     string `json:"key"`
	Payload string `json:"payload,omitempty"`
}

func New(op Op, seq uint64, key, payload string) *Event {
	return &Event{
		Seq:     seq,
		Time:    time.Now().UnixNano(),
		Op:      op,
		Key:     key,
		Payload: payload,
	}
}
