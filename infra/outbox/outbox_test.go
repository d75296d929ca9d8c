package outbox

import (
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
)

func openTest(t *testing.T) *Outbox {
	t.Helper()
	ob, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open outbox: %v", err)
	}
	t.Cleanup(func() { _ = ob.Close() })
	return ob
}

func TestAppendAndGet(t *testing.T) {
	ob := openTest(t)
	if err := ob.Append(1, []byte("hello")); err != nil {
		t.Fatalf("append: %v", err)
	}

	rec, err := ob.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateNew || string(rec.Payload) != "hello" || rec.Retries != 0 {
		t.Errorf("unexpected entry: %+v", rec)
	}
}

func TestStateTransitions(t *testing.T) {
	ob := openTest(t)
	now := time.Now().UnixNano()
	_ = ob.Append(7, []byte("x"))

	if err := ob.MarkSent(7, now); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if rec, _ := ob.Get(7); rec.State != StateSent || rec.LastAttempt != now {
		t.Errorf("after MarkSent: %+v", rec)
	}

	if err := ob.MarkFailed(7, now+1); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if rec, _ := ob.Get(7); rec.State != StateFailed || rec.Retries != 1 {
		t.Errorf("after MarkFailed: %+v", rec)
	}

	if err := ob.MarkAcked(7, now+2); err != nil {
		t.Fatalf("mark acked: %v", err)
	}
	if rec, _ := ob.Get(7); rec.State != StateAcked {
		t.Errorf("after MarkAcked: %+v", rec)
	}
}

func TestScanPendingSkipsAcked(t *testing.T) {
	ob := openTest(t)
	now := time.Now().UnixNano()
	for seq := uint64(1); seq <= 4; seq++ {
		_ = ob.Append(seq, []byte{byte(seq)})
	}
	_ = ob.MarkSent(2, now)
	_ = ob.MarkAcked(2, now)
	_ = ob.MarkFailed(3, now)

	var seen []uint64
	err := ob.ScanPending(func(seq uint64, e Entry) error {
		seen = append(seen, seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	// 1 and 4 are NEW, 3 is FAILED; 2 is ACKED and must be skipped.
	want := []uint64{1, 3, 4}
	if len(seen) != len(want) {
		t.Fatalf("pending = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("pending = %v, want %v", seen, want)
		}
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	ob := openTest(t)
	_ = ob.Append(9, []byte("bye"))
	if err := ob.Delete(9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ob.Get(9); err != pebble.ErrNotFound {
		t.Errorf("expected pebble.ErrNotFound, got %v", err)
	}
}
