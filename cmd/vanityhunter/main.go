package main

import (
	"context"
	"errors"
	"os"

	"github.com/Amr-9/VanityHunter/internal/ui"
	"github.com/Amr-9/VanityHunter/pkg/search"
)

const version = "1.0"

// Exit codes.
const (
	exitFailure  = 1
	exitCanceled = 130
)

func main() {
	err := newRootCommand().ExecuteContext(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, search.ErrCanceled):
		// The summary already says so.
		os.Exit(exitCanceled)
	default:
		ui.NewConsole(os.Stderr).Error(err)
		os.Exit(exitFailure)
	}
}
