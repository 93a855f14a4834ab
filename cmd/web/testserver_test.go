package main

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/jurassictravel/internal/e2etest"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "JURASSIC_ADDR":
		return "localhost:0", true
	case "JURASSIC_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

// startTestServer starts a server with a fresh in-memory database and stops it when the test ends.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}
