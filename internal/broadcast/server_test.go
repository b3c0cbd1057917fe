package broadcast

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-dev/arbor/internal/graph"
)

func TestServerSendsSnapshotThenDelta(t *testing.T) {
	g := graph.New()
	_, err := g.AddNode(graph.Symbol{ID: "f1", Name: "main", Kind: graph.KindFunction, File: "main.go"})
	require.NoError(t, err)
	shared := graph.NewShared(g)

	hub := NewHub()
	srv := NewServer(hub, shared)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var snapshot Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, TypeGraphUpdate, snapshot.Type)

	srv.PublishDelta([]string{"main.go"})

	var delta Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&delta))
	assert.Equal(t, TypeGraphUpdate, delta.Type)
}
