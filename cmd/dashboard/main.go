// Command dashboard runs the ConnectUAE operator dashboard API: it loads and
// cleans the five source datasets and serves the executive and operations
// views over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		application.Logger.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
