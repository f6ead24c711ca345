package core

import (
	"io"
	"os"
	"strings"
)

// FatalMode selects how unrecoverable failures leave the process.
type FatalMode uint8

const (
	// FatalAbort logs a diagnostic and terminates.
	FatalAbort FatalMode = iota
	// FatalSilent terminates without producing any output.
	FatalSilent
)

func ParseFatalMode(s string) FatalMode {
	if strings.EqualFold(strings.TrimSpace(s), "silent") {
		return FatalSilent
	}
	return FatalAbort
}

func (m FatalMode) String() string {
	if m == FatalSilent {
		return "silent"
	}
	return "abort"
}

// FatalHandler terminates the process on the first unrecoverable error it is handed.
// There is no retry and no degraded mode.
type FatalHandler struct {
	Mode FatalMode
	exit func(code int)
}

func NewFatalHandler(mode FatalMode) *FatalHandler {
	h := &FatalHandler{Mode: mode, exit: os.Exit}
	if mode == FatalSilent {
		SetLogOutput(io.Discard)
	}
	return h
}

// SetExit replaces the termination function. Tests use it to observe fatal paths.
func (h *FatalHandler) SetExit(exit func(code int)) {
	h.exit = exit
}

// Check does nothing for a nil error, otherwise it terminates through the configured mode.
func (h *FatalHandler) Check(op string, err error) {
	if err == nil {
		return
	}
	if h.Mode == FatalAbort {
		LogError("%s: %s", op, err)
	}
	h.exit(1)
}
