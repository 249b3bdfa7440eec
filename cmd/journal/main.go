// Package main runs the journal inspection tool.
//
// The process is a read-only window into a conversation's group-update
// history: it decodes records of every storage generation, resolves their
// canonical update sources, and reports decode anomalies without ever
// rewriting a record.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	journalcmd "github.com/louisbranch/groupjournal/internal/cmd/journal"
)

func main() {
	cfg, err := journalcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[JOURNAL] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := journalcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
