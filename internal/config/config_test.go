package config

import (
	"testing"
	"time"
)

func TestLoadMemoTimeouts(t *testing.T) {
	t.Setenv("MEMO_SYNTHESIS_TIMEOUT_SECONDS", "90")

	cfg := Load()

	if cfg.Memo.SynthesisTimeout != 90*time.Second {
		t.Errorf("SynthesisTimeout = %v, want 90s", cfg.Memo.SynthesisTimeout)
	}
	if cfg.Memo.ExtractionTimeout != 30*time.Second {
		t.Errorf("ExtractionTimeout default = %v, want 30s", cfg.Memo.ExtractionTimeout)
	}
	if cfg.Memo.ChatReplyTimeout != 30*time.Second {
		t.Errorf("ChatReplyTimeout default = %v, want 30s", cfg.Memo.ChatReplyTimeout)
	}
}
