//go:build !windows

package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStopsOnInterrupt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "reset-password.html"), []byte("<html></html>"), 0o644))
	port := freePort(t)
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	var out bytes.Buffer
	errCh := make(chan error, 1)
	go func() {
		errCh <- run(serveArgs(root, port), &out)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after SIGINT")
	}

	got := out.String()
	assert.Contains(t, got, "Server running at http://localhost:"+strconv.Itoa(port))
	assert.Contains(t, got, "Serving files from: "+root)
	assert.Contains(t, got, "Server stopped.")
}
