package main

import (
	"os"
	"time"
)

func main() {
	now := func() time.Time { return time.Now().UTC() }
	if err := newRootCommand(now).Execute(); err != nil {
		os.Exit(1)
	}
}
