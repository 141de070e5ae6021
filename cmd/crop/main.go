// Command crop inspects cropping layers: it infers output shapes,
// crops sample tensors and prints layer configurations.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		slog.Error("crop failed", "error", err)
		os.Exit(1)
	}
}
