package recovery

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestRecoverToValuePassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	v, err := RecoverToValue(logger, "ok", func() (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}

	sentinel := errors.New("boom")
	_, err = RecoverToValue(logger, "err", func() (int, error) {
		return 0, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error, got %v", err)
	}
}

func TestRecoverToValueConvertsPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	v, err := RecoverToValue(logger, "Eval", func() (bool, error) {
		var m map[string]int
		m["x"] = 1
		return true, nil
	})
	if v {
		t.Error("expected zero value after panic")
	}

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T (%v)", err, err)
	}
	if pe.Operation != "Eval" {
		t.Errorf("expected operation 'Eval', got %q", pe.Operation)
	}
}
