package codec

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugf_Switch(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() {
		SetDebug(false)
		SetLogger(zap.NewNop())
	})

	if _, err := CalcChar(-1); err == nil {
		t.Fatal("expected error")
	}
	if logs.Len() != 0 {
		t.Errorf("logged %d entries with debug off, want 0", logs.Len())
	}

	SetDebug(true)
	if _, err := CalcChar(-1); err == nil {
		t.Fatal("expected error")
	}
	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries with debug on, want 1", len(entries))
	}
	if entries[0].Level != zap.DebugLevel {
		t.Errorf("level = %v, want debug", entries[0].Level)
	}
}
