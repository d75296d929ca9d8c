// Package outbox tracks delivery state for mutation events awaiting
// broadcast. It is bookkeeping for the broadcaster, not a journal of
// the store itself: the tree is never rebuilt from it.
package outbox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// -------------------- State --------------------

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// -------------------- Entry --------------------

type Entry struct {
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

var ErrCorruptEntry = errors.New("outbox: corrupt entry")

// binary encoding: [state:1][retries:4][lastAttempt:8][payload...]
func encodeEntry(e Entry) []byte {
	buf := make([]byte, 1+4+8+len(e.Payload))
	buf[0] = byte(e.State)
	binary.BigEndian.PutUint32(buf[1:5], e.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(e.LastAttempt))
	copy(buf[13:], e.Payload)
	return buf
}

func decodeEntry(b []byte) (Entry, error) {
	if len(b) < 13 {
		return Entry{}, ErrCorruptEntry
	}
	payload := make([]byte, len(b)-13)
	copy(payload, b[13:])
	return Entry{
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     payload,
	}, nil
}

// -------------------- Outbox --------------------

type Outbox struct {
	db *pebble.DB
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// -------------------- API --------------------

// Append records a freshly produced event in NEW state.
func (o *Outbox) Append(seq uint64, payload []byte) error {
	rec := Entry{State: StateNew, Payload: payload}
	return o.db.Set(keyFor(seq), encodeEntry(rec), pebble.Sync)
}

// Get returns the entry for a sequence number.
func (o *Outbox) Get(seq uint64) (Entry, error) {
	val, closer, err := o.db.Get(keyFor(seq))
	if err != nil {
		return Entry{}, err
	}
	defer closer.Close()
	return decodeEntry(val)
}

// MarkSent transitions an entry after a publish attempt started.
func (o *Outbox) MarkSent(seq uint64, attemptedAt int64) error {
	return o.updateState(seq, StateSent, attemptedAt)
}

// MarkAcked transitions an entry after the broker confirmed it.
func (o *Outbox) MarkAcked(seq uint64, attemptedAt int64) error {
	return o.updateState(seq, StateAcked, attemptedAt)
}

// MarkFailed puts an entry back in line for the next broadcast pass
// and counts the attempt.
func (o *Outbox) MarkFailed(seq uint64, attemptedAt int64) error {
	return o.updateState(seq, StateFailed, attemptedAt)
}

func (o *Outbox) updateState(seq uint64, state State, attemptedAt int64) error {
	rec, err := o.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.LastAttempt = attemptedAt
	if state == StateFailed {
		rec.Retries++
	}
	return o.db.Set(keyFor(seq), encodeEntry(rec), pebble.Sync)
}

// Delete removes ACKED entries (cleanup).
func (o *Outbox) Delete(seq uint64) error {
	return o.db.Delete(keyFor(seq), pebble.Sync)
}

// -------------------- Scan --------------------

// ScanPending iterates entries still waiting for a confirmed publish
// (NEW or FAILED), in sequence order. The broadcaster drives this.
func (o *Outbox) ScanPending(fn func(seq uint64, e Entry) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("event/"),
		UpperBound: []byte("event/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeEntry(iter.Value())
		if err != nil {
			return err
		}
		if rec.State != StateNew && rec.State != StateFailed {
			continue
		}
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		if err := fn(seq, rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// -------------------- Helpers --------------------

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("event/%020d", seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte("event/"))), "%d", &seq)
	return seq, err
}
