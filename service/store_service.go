package service

import (
	"io"
	"sync"

	"arbor/bstree"
	"arbor/event"
	"arbor/infra/outbox"
	"arbor/infra/sequence"
)

/*
StoreService is the ONLY write entry point into the store.

The tree itself is single-threaded; this layer is the caller that
serializes access, with one exclusive lock around the whole container.
All coordination between:
- container (bstree)
- infra (sequence, outbox)
happens here.
*/

type StoreService struct {
	mu   sync.Mutex
	tree *bstree.Tree[string, string]
	seq  *sequence.Sequencer
	ob   *outbox.Outbox
	enc  event.Serializer
}

// NewStoreService wires all dependencies. A nil outbox disables
// mutation events, which is what the demo harness and tests want.
func NewStoreService(
	tree *bstree.Tree[string, string],
	seq *sequence.Sequencer,
	ob *outbox.Outbox,
	enc event.Serializer,
) *StoreService {
	if enc == nil {
		enc = event.JSONSerializer{}
	}
	return &StoreService{
		tree: tree,
		seq:  seq,
		ob:   ob,
		enc:  enc,
	}
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// Insert stores a key/payload pair and returns the assigned sequence
// number. It cannot fail; duplicate keys are accepted.
func (s *StoreService) Insert(key, payload string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq.Next()
	s.tree.Insert(key, payload)
	s.record(event.New(event.OpInsert, seq, key, payload))
	return seq
}

// Delete removes one instance of key and returns the payload carried
// by the unlinked node, or ("", false) if the key is absent. Absent
// keys produce no event and no sequence number.
func (s *StoreService) Delete(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, ok := s.tree.Delete(key)
	if !ok {
		return "", false
	}
	s.record(event.New(event.OpDelete, s.seq.Next(), key, ""))
	return payload, true
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

func (s *StoreService) Search(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Search(key)
}

func (s *StoreService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

func (s *StoreService) LastSeq() uint64 {
	return s.seq.Current()
}

// Dump writes every record to w in the given traversal order, in the
// container's print format.
func (s *StoreService) Dump(w io.Writer, order bstree.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Fprint(w, order)
}

// record pushes a mutation event into the outbox, best-effort. The
// store never fails a mutation because the outbox did.
func (s *StoreService) record(e *event.Event) {
	if s.ob == nil {
		return
	}
	data, err := s.enc.Encode(e)
	if err != nil {
		return
	}
	_ = s.ob.Append(e.Seq, data)
}
