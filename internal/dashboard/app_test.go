package dashboard

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lokichain/loki-node/internal/dashboard/api"
	"github.com/stretchr/testify/require"
)

func testNode(t *testing.T) (*httptest.Server, int) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"network":"lokichain","denom":"LOKI","hasher":"sha256","mempoolSize":1,"wsClients":0}}`))
	})
	mux.HandleFunc("/api/v1/mempool", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"count":1,"transactions":[{"transaction":{"hash":"aGFzaGhhc2hoYXNo","sender":"lokichain1sender","data":{"app":"bank","operation":"transfer"},"amount":{"amount":10,"denom":"LOKI"},"gas":10,"nonce":1,"timestamp":1},"state":"pending_confirmation"}]}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	port, err := strconv.Atoi(srv.URL[strings.LastIndex(srv.URL, ":")+1:])
	require.NoError(t, err)
	return srv, port
}

func TestFetchNodeAndView(t *testing.T) {
	srv, port := testNode(t)
	m := newModel(Config{Ports: []int{port}}, []*api.Client{api.NewClientURL(srv.URL)})

	msg := m.fetchNode(0)()
	update, ok := msg.(nodeUpdateMsg)
	require.True(t, ok)
	require.NoError(t, update.err)

	next, _ := m.Update(msg)
	m = next.(Model)
	require.True(t, m.nodes[0].Online)
	require.Equal(t, 1, m.totalPending)

	view := m.View()
	require.Contains(t, view, "lokichain")
	require.Contains(t, view, "bank/transfer")
	require.Contains(t, view, "pending_confirmation")
}

func TestOfflineNode(t *testing.T) {
	m := newModel(Config{Ports: []int{1}}, []*api.Client{api.NewClientURL("http://127.0.0.1:1")})

	next, _ := m.Update(nodeUpdateMsg{index: 0, err: errors.New("connection refused")})
	m = next.(Model)
	require.False(t, m.nodes[0].Online)

	view := m.View()
	require.Contains(t, view, "OFFLINE")
	require.Contains(t, view, "connection refused")
}

func TestKeyNavigation(t *testing.T) {
	clients := []*api.Client{api.NewClientURL("http://a"), api.NewClientURL("http://b"), api.NewClientURL("http://c")}
	m := newModel(Config{Ports: []int{1, 2, 3}}, clients)

	press := func(m Model, k tea.KeyMsg) Model {
		next, _ := m.Update(k)
		return next.(Model)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.selectedNode)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	require.Equal(t, 2, m.selectedNode)

	// 범위 밖 번호는 무시
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	require.Equal(t, 2, m.selectedNode)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	require.Equal(t, 1, m.selectedNode)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.True(t, m.help.ShowAll)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.True(t, next.(Model).quitting)
	require.NotNil(t, cmd)
	require.Empty(t, next.(Model).View())
}
