// Command lambdagw-stub serves an in-memory stand-in for the lambda gateway
// backend, for developing the console without real builds.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"lambdagw/internal/logging"
	"lambdagw/internal/stubbackend"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	level := flag.String("log-level", "info", "log level")
	misspelled := flag.Bool("succes", false, `answer with the misspelled "succes" field`)
	flag.Parse()

	log, err := logging.New(os.Stderr, *level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := stubbackend.New(stubbackend.Options{
		MisspelledSuccess: *misspelled,
		Logger:            log,
	})
	log.WithField("addr", *addr).Info("stub backend listening")
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("stub backend stopped")
		os.Exit(1)
	}
}
