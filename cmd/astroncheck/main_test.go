package main

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// syncBuffer is a bytes.Buffer safe for a command writing while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// resetCommand restores every flag to its default and hands ctx to cmd and
// its children, so commands can be executed repeatedly within one test
// binary. Cobra keeps a subcommand's context once set.
func resetCommand(cmd *cobra.Command, ctx context.Context) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		resetCommand(c, ctx)
	}
}

func executeContext(t *testing.T, ctx context.Context, stdout *syncBuffer, args ...string) error {
	t.Helper()
	resetCommand(rootCmd, ctx)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(&syncBuffer{})
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out syncBuffer
	err := executeContext(t, context.Background(), &out, args...)
	return out.String(), err
}
