// Package main is the entry point for the candlepin entitlement server.
package main

import (
	"context"
	"log"
	"os"

	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}
