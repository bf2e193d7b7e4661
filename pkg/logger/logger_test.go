package logx

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitDefaultsToInfoLevel(t *testing.T) {
	Init()

	if got := log.Logger.GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", got)
	}
	log.Info().Str("check", "smoke").Msg("logger initialized")
}

func TestInitDebugLevel(t *testing.T) {
	Init(Config{Debug: true})

	if got := log.Logger.GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", got)
	}
}

func TestInitPrettyFormat(t *testing.T) {
	Init(Config{PrettyFormat: true})

	if got := log.Logger.GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", got)
	}
	log.Debug().Msg("suppressed below info")
}

func TestSafeEmptyUsesDefault(t *testing.T) {
	if got := safe(); got != DefaultConfig {
		t.Fatalf("expected the default config, got %+v", got)
	}
	conf := Config{Debug: true}
	if got := safe(conf); got.Debug != true {
		t.Fatalf("expected the passed config, got %+v", got)
	}
}
