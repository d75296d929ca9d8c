// Package service orchestrates the core components of the store —
// the ordered tree, the sequencer, and the event outbox.
//
// It provides a clean API for inserting, deleting, and querying
// records, decoupled from network transports like HTTP.
package service
