package source

import (
	"net/http"

	"github.com/etnz/ledgerview/config"
	"github.com/rs/zerolog"
)

// Open returns the provider described by cfg: the local file when one is
// configured, the ledger line service otherwise.
func Open(cfg *config.Config, log zerolog.Logger) (Provider, error) {
	if cfg.Source.File != "" {
		return OpenFile(cfg.Source.File)
	}
	client := &http.Client{Timeout: cfg.Source.Timeout}
	if cfg.Source.Cache {
		client = Daily("", cfg.Source.Timeout, log)
	}
	return NewClient(cfg.Source.BaseURL, client, log), nil
}
