package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"arbor/api/httpserver"
	"arbor/bstree"
	"arbor/event"
	"arbor/infra/outbox"
	"arbor/infra/sequence"
	"arbor/jobs/broadcaster"
	"arbor/jobs/follower"
	"arbor/service"
)

func main() {
	// ---------------- Outbox ----------------

	ob, err := outbox.Open("./outbox")
	if err != nil {
		log.Fatalf("outbox init failed: %v", err)
	}
	defer ob.Close()

	// ---------------- Sequencer ----------------

	seqGen := sequence.New(0)

	// ---------------- Store ----------------

	tree := bstree.New[string, string](bstree.Ordered[string]())
	svc := service.NewStoreService(tree, seqGen, ob, event.JSONSerializer{})

	// ---------------- Background Jobs ----------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Broadcasting needs a live broker; skip it when none is given.
	if brokers := os.Getenv("ARBOR_BROKERS"); brokers != "" {
		list := strings.Split(brokers, ",")
		topic := os.Getenv("ARBOR_TOPIC")
		if topic == "" {
			topic = "arbor.events"
		}

		bc, err := broadcaster.New(ob, broadcaster.Config{
			Brokers:  list,
			Topic:    topic,
			Interval: 250 * time.Millisecond,
		})
		if err != nil {
			log.Fatalf("broadcaster init failed: %v", err)
		}
		defer bc.Close()
		bc.Start(ctx)

		fo := follower.New(list, topic, "arbor-follower", event.JSONSerializer{})
		defer fo.Close()
		go func() {
			if err := fo.Run(ctx); err != nil {
				log.Printf("[follower] stopped: %v", err)
			}
		}()
	}

	// ---------------- HTTP ----------------

	r := httpserver.NewServer(svc).Router()

	go func() {
		log.Println("Starting server on :8080")
		if err := http.ListenAndServe(":8080", r); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	fmt.Println("🌳 arbor store running on :8080")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
}
