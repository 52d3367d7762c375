package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/wei"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

func addr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func newTestServer(t *testing.T) (*httptest.Server, *market.Standalone) {
	t.Helper()
	store, err := history.Open(history.DefaultConfig(filepath.Join(t.TempDir(), "history.db")))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	venue := market.NewStandalone(addr(0xfe))
	ledgerService := service.New(ledger.NewInMemory(), venue, venue, service.Config{
		Standalone:                true,
		SkipSignatureVerification: true,
		ProxyAddress:              addr(0xaa),
		History:                   store,
	}, zerolog.Nop())

	server := NewServer(&Services{Ledger: ledgerService}, 30*time.Second, zerolog.Nop())
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts, venue
}

func call(t *testing.T, ts *httptest.Server, method string, params map[string]any) map[string]any {
	t.Helper()
	request := map[string]any{"method": method}
	if params != nil {
		request["params"] = []any{params}
	}
	body, err := json.Marshal(request)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Result
}

func TestPing(t *testing.T) {
	ts, _ := newTestServer(t)
	result := call(t, ts, "ping", nil)
	require.Equal(t, "success", result["status"])
}

func TestUnknownMethod(t *testing.T) {
	ts, _ := newTestServer(t)
	result := call(t, ts, "does_not_exist", nil)
	require.Equal(t, "error", result["status"])
	require.Equal(t, "unknownCmd", result["error"])
}

func TestServerInfoOverGet(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "?command=server_info")
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "success", envelope.Result["status"])
	info, ok := envelope.Result["info"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, info["standalone"])
}

func TestSubmitAndQuery(t *testing.T) {
	ts, venue := newTestServer(t)
	subject := addr(0x01)

	require.NoError(t, venue.Buy(subject, subject, 1, wei.Zero()))
	quote, err := venue.QuoteBuy(subject, 2)
	require.NoError(t, err)
	venue.Fund(subject, quote)

	result := call(t, ts, "submit", map[string]any{
		"tx_json": map[string]any{
			"TransactionType": "SnipeShares",
			"Account":         subject.String(),
			"Amount":          2,
			"Payment":         quote.String(),
		},
	})
	require.Equal(t, "success", result["status"])
	require.Equal(t, "applied", result["engine_result"])
	require.Equal(t, true, result["applied"])
	hash, ok := result["tx_hash"].(string)
	require.True(t, ok)
	require.Len(t, hash, 64)

	balance := call(t, ts, "balance", map[string]any{
		"subject": subject.String(),
		"holder":  subject.String(),
	})
	require.Equal(t, "success", balance["status"])
	require.Equal(t, float64(2), balance["balance"])

	txResult := call(t, ts, "tx", map[string]any{"transaction": hash})
	require.Equal(t, "success", txResult["status"])
	require.Equal(t, "SnipeShares", txResult["tx_type"])

	missing := call(t, ts, "tx", map[string]any{"transaction": strings.Repeat("00", 32)})
	require.Equal(t, "txnNotFound", missing["error"])
}

func TestInvalidAddressParams(t *testing.T) {
	ts, _ := newTestServer(t)
	result := call(t, ts, "balance", map[string]any{
		"subject": "not-an-address",
		"holder":  addr(0x02).String(),
	})
	require.Equal(t, "error", result["status"])
	require.Equal(t, "invalidParams", result["error"])
}

func TestWebsocketSubscribe(t *testing.T) {
	ts, venue := newTestServer(t)
	subject := addr(0x01)
	require.NoError(t, venue.Buy(subject, subject, 1, wei.Zero()))
	quote, err := venue.QuoteBuy(subject, 1)
	require.NoError(t, err)
	venue.Fund(subject, quote)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"command": "subscribe", "id": 1}))
	var response map[string]any
	require.NoError(t, conn.ReadJSON(&response))
	require.Equal(t, "success", response["status"])

	// A submission over HTTP shows up on the stream.
	result := call(t, ts, "submit", map[string]any{
		"tx_json": map[string]any{
			"TransactionType": "SnipeShares",
			"Account":         subject.String(),
			"Amount":          1,
			"Payment":         quote.String(),
		},
	})
	require.Equal(t, "applied", result["engine_result"])

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var event map[string]any
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, "transaction", event["type"])
	require.Equal(t, "SnipeShares", event["tx_type"])
	require.Equal(t, true, event["applied"])

	require.NoError(t, conn.WriteJSON(map[string]any{"command": "unsubscribe", "id": 2}))
	require.NoError(t, conn.ReadJSON(&response))
	require.Equal(t, "success", response["status"])
}

func TestWebsocketQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{
		"command": "balance",
		"id":      7,
		"subject": addr(0x01).String(),
		"holder":  addr(0x02).String(),
	}))
	var response map[string]any
	require.NoError(t, conn.ReadJSON(&response))
	require.Equal(t, "success", response["status"])
	require.Equal(t, float64(7), response["id"])
	result, ok := response["result"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(0), result["balance"])
}

func TestSubscribeOverHTTPRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	result := call(t, ts, "subscribe", map[string]any{})
	require.Equal(t, "error", result["status"])
	require.Equal(t, "notSupported", result["error"])
}
