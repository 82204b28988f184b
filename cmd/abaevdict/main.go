// Command abaevdict extracts the Abaev etymological dictionary from its TEI
// sources into relational tables.
//
// Subcommands:
//
//	build [--load]          extract the corpus and write the CSV tables
//	load                    load previously written CSV tables into the database
//	langs fill-coords       fill missing language coordinates from Glottolog
//	map --entry NAME        print a GeoJSON map of the languages cited by an entry
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
