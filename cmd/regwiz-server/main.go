// Command regwiz-server runs an in-memory demo game server exposing the
// registration endpoints, so the wizard can be tried without a real server.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saltmarsh/regwiz/internal/demoserver"
)

func main() {
	var (
		addr  = flag.String("addr", ":3000", "Listen address")
		debug = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	srv := demoserver.New()

	log.Info().Str("addr", *addr).Msg("demo server listening")
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
