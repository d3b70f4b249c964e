package site

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/craftburger/internal/session"
	"github.com/ziadkadry99/craftburger/internal/theme"
)

func dialTab(t *testing.T, server *httptest.Server, clientID, tab string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/theme?tab=" + tab
	header := http.Header{}
	header.Set("Cookie", session.ClientCookie+"="+clientID)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForTabs(t *testing.T, hub *ThemeHub, clientID string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Tabs(clientID) != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d tabs, got %d", n, hub.Tabs(clientID))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebSocketRequiresClientCookie(t *testing.T) {
	_, _, r := setupSite(t)
	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/theme"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail without client cookie")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 response, got %+v", resp)
	}
}

func TestToggleReachesOtherTabs(t *testing.T) {
	_, hub, r := setupSite(t)
	server := httptest.NewServer(r)
	defer server.Close()

	clientID := uuid.New().String()
	origin := dialTab(t, server, clientID, "tab-a")
	other := dialTab(t, server, clientID, "tab-b")
	stranger := dialTab(t, server, uuid.New().String(), "tab-c")
	waitForTabs(t, hub, clientID, 2)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/theme", strings.NewReader(url.Values{"theme": {"dark"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(TabHeader, "tab-a")
	req.AddCookie(&http.Cookie{Name: session.ClientCookie, Value: clientID})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /theme: %v", err)
	}
	resp.Body.Close()

	other.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ThemeMessage
	if err := other.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "themeChanged" || msg.Theme != theme.Dark || msg.Source != theme.SourceUser {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.Document.Class != "dark" {
		t.Errorf("document class = %q", msg.Document.Class)
	}

	// Neither the originating tab nor another visitor hears about it.
	for _, conn := range []*websocket.Conn{origin, stranger} {
		conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
		if err := conn.ReadJSON(&msg); err == nil {
			t.Errorf("unexpected message: %+v", msg)
		}
	}
}

func TestBroadcastUnknownClient(t *testing.T) {
	hub := NewThemeHub(nil)
	defer hub.Close()
	if n := hub.Broadcast("nobody", "", ThemeMessage{Type: "themeChanged"}); n != 0 {
		t.Errorf("Broadcast = %d, want 0", n)
	}
}

func TestHubCloseDisconnectsTabs(t *testing.T) {
	_, hub, r := setupSite(t)
	server := httptest.NewServer(r)
	defer server.Close()

	clientID := uuid.New().String()
	conn := dialTab(t, server, clientID, "tab-a")
	waitForTabs(t, hub, clientID, 1)

	hub.Close()
	if hub.Tabs(clientID) != 0 {
		t.Errorf("expected no tabs after Close")
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected connection to be closed")
	}
}
