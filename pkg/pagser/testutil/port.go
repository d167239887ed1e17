package testutil

import (
	"context"
	"net"
	"testing"
)

// GetFreePort asks the kernel for a free TCP port on localhost.
func GetFreePort(t *testing.T) int {
	t.Helper()

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to get a free port: %v", err)
	}

	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}
