package main

import (
	"time"

	"github.com/cloud66-oss/geolookup/cmd"
	"github.com/getsentry/sentry-go"
)

func main() {
	// sentry is set up in cmd once the config is loaded, buffered events
	// are flushed on the way out
	defer sentry.Flush(2 * time.Second)

	cmd.Execute()
}
