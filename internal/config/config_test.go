package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Engine.MaxLines != 1000 {
		t.Errorf("MaxLines = %d, want 1000", cfg.Engine.MaxLines)
	}
	if cfg.Engine.SeriousRatio != 2.0 {
		t.Errorf("SeriousRatio = %v, want 2.0", cfg.Engine.SeriousRatio)
	}
	if cfg.Connector.Provider != "stdin" {
		t.Errorf("Provider = %q, want stdin", cfg.Connector.Provider)
	}
	if cfg.Output.Format != "stdout" {
		t.Errorf("Format = %q, want stdout", cfg.Output.Format)
	}
	if cfg.Server.Addr != ":8440" {
		t.Errorf("Addr = %q, want :8440", cfg.Server.Addr)
	}
	if cfg.Enrich.Enabled {
		t.Error("enrichment should default to disabled")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOUPE_MAX_LINES", "50")
	t.Setenv("LOUPE_SERIOUS_RATIO", "3.5")
	t.Setenv("LOUPE_CONNECTOR", "file")
	t.Setenv("LOUPE_FILE", "/var/log/app.log")
	t.Setenv("LOUPE_PRETTY", "true")
	t.Setenv("LOUPE_ENRICH", "1")

	cfg := Load()

	if cfg.Engine.MaxLines != 50 {
		t.Errorf("MaxLines = %d, want 50", cfg.Engine.MaxLines)
	}
	if cfg.Engine.SeriousRatio != 3.5 {
		t.Errorf("SeriousRatio = %v, want 3.5", cfg.Engine.SeriousRatio)
	}
	if cfg.Connector.Provider != "file" || cfg.Connector.Path != "/var/log/app.log" {
		t.Errorf("connector = %+v", cfg.Connector)
	}
	if !cfg.Output.Pretty {
		t.Error("Pretty = false, want true")
	}
	if !cfg.Enrich.Enabled {
		t.Error("Enrich.Enabled = false, want true")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOUPE_MAX_LINES", "not-a-number")
	t.Setenv("LOUPE_SERIOUS_RATIO", "banana")
	t.Setenv("LOUPE_PRETTY", "kinda")

	cfg := Load()

	if cfg.Engine.MaxLines != 1000 {
		t.Errorf("MaxLines = %d, want fallback 1000", cfg.Engine.MaxLines)
	}
	if cfg.Engine.SeriousRatio != 2.0 {
		t.Errorf("SeriousRatio = %v, want fallback 2.0", cfg.Engine.SeriousRatio)
	}
	if cfg.Output.Pretty {
		t.Error("Pretty should fall back to false")
	}
}

func TestLoadNegativeMaxLinesFallsBack(t *testing.T) {
	t.Setenv("LOUPE_MAX_LINES", "-5")
	if cfg := Load(); cfg.Engine.MaxLines != 1000 {
		t.Errorf("MaxLines = %d, want fallback 1000", cfg.Engine.MaxLines)
	}
}

func TestConnectorExtra(t *testing.T) {
	t.Setenv("LOUPE_POLL_INTERVAL", "10s")

	cfg := Load()
	if cfg.Connector.Extra["poll_interval"] != "10s" {
		t.Errorf("Extra = %v", cfg.Connector.Extra)
	}
}
