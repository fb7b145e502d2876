package main

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/hublink-go/internal/server/config"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

const testAPIKey = "test-api-key-0123456789"

func testConfig(t *testing.T) *config.ServerConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Security.APIKey = testAPIKey
	if err := config.Verify(cfg); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	return cfg
}

func do(t *testing.T, method, url string, body any, header map[string]string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestApp_LinkFlow(t *testing.T) {
	a, err := newApp(testConfig(t), logger.Discard())
	if err != nil {
		t.Fatalf("newApp() = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.start(ctx)
	defer a.sweeper.Stop()

	srv := httptest.NewServer(a.router)
	defer srv.Close()
	auth := map[string]string{"Authorization": "Bearer " + testAPIKey}

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/link-tokens", map[string]int64{"chat_user_id": 42}, auth)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("issue status = %d", resp.StatusCode)
	}
	var issued struct {
		Data struct {
			Token   string `json:"token"`
			LinkURL string `json:"link_url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&issued); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(issued.Data.LinkURL, "https://studenthub.co/link-discord?token=") {
		t.Errorf("link_url = %q", issued.Data.LinkURL)
	}
	if a.registry.Len() != 1 {
		t.Errorf("registry.Len() = %d, want 1", a.registry.Len())
	}

	resp = do(t, http.MethodGet, srv.URL+"/link-discord?token="+issued.Data.Token, nil,
		map[string]string{"X-Hub-User": "hub-7"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("callback status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/link-discord?token="+issued.Data.Token, nil,
		map[string]string{"X-Hub-User": "hub-7"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second callback status = %d, want 404", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/links/42", nil, auth)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get link status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/metrics", nil, nil)
	metrics, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		"hublink_link_tokens_issued_total 1",
		"hublink_link_tokens_consumed_total 1",
		"hublink_link_tokens_stored 0",
		"hublink_accounts_linked 1",
	} {
		if !strings.Contains(string(metrics), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestApp_RequiresAPIKey(t *testing.T) {
	a, err := newApp(testConfig(t), logger.Discard())
	if err != nil {
		t.Fatalf("newApp() = %v", err)
	}
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	resp := do(t, http.MethodPost, srv.URL+"/admin/v1/gc/trigger", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestApp_MetricsAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.MetricsAuth = true
	a, err := newApp(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("newApp() = %v", err)
	}
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	if resp := do(t, http.MethodGet, srv.URL+"/metrics", nil, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated /metrics = %d, want 401", resp.StatusCode)
	}
	if resp := do(t, http.MethodGet, srv.URL+"/metrics", nil, map[string]string{"X-API-Key": testAPIKey}); resp.StatusCode != http.StatusOK {
		t.Errorf("authenticated /metrics = %d, want 200", resp.StatusCode)
	}
}

func TestApp_WebhookNotifier(t *testing.T) {
	got := make(chan string, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg struct {
			ChatUserID int64  `json:"chat_user_id"`
			Text       string `json:"text"`
		}
		json.NewDecoder(r.Body).Decode(&msg)
		got <- msg.Text
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	cfg := testConfig(t)
	cfg.Bot.WebhookURL = hook.URL
	a, err := newApp(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("newApp() = %v", err)
	}

	req, err := a.links.RequestLink(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.links.Verify(context.Background(), req.Token, "hub-7"); err != nil {
		t.Fatalf("Verify() = %v", err)
	}

	select {
	case text := <-got:
		if !strings.Contains(text, "hub-7") {
			t.Errorf("confirmation = %q", text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("webhook not called")
	}
}

func TestApp_TLS(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeKeyPair(t, dir)

	cfg := testConfig(t)
	cfg.Server.HTTP.TLSCertFile = certFile
	cfg.Server.HTTP.TLSKeyFile = keyFile
	a, err := newApp(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("newApp() = %v", err)
	}
	if !a.server.TLS() {
		t.Error("server should serve TLS")
	}
	a.start(context.Background())
	a.sweeper.Stop()
	if err := a.stopTLS(); err != nil {
		t.Errorf("stopTLS() = %v", err)
	}

	cfg.Server.HTTP.TLSKeyFile = certFile
	if _, err := newApp(cfg, logger.Discard()); err == nil {
		t.Error("newApp() with mismatched key pair should fail")
	}
}

func TestReloadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hublink.yaml")
	t.Cleanup(func() { logger.SetLevel("info") })
	logger.SetLevel("info")

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	reloadLogLevel(path, nil, logger.Discard())
	if got := logger.GetLevel(); got != "debug" {
		t.Errorf("level = %q, want debug", got)
	}

	// Invalid files leave the level alone.
	if err := os.WriteFile(path, []byte("log:\n  level: trace\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	reloadLogLevel(path, nil, logger.Discard())
	if got := logger.GetLevel(); got != "debug" {
		t.Errorf("level = %q after invalid reload, want debug", got)
	}
}

func TestReloadLogLevel_FlagOverrideWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hublink.yaml")
	t.Cleanup(func() { logger.SetLevel("info") })
	logger.SetLevel("warn")

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	reloadLogLevel(path, flagOverrides("", "warn"), logger.Discard())
	if got := logger.GetLevel(); got != "warn" {
		t.Errorf("level = %q, want the --log-level value", got)
	}
}

func TestFlagOverrides(t *testing.T) {
	if got := flagOverrides("", ""); len(got) != 0 {
		t.Errorf("flagOverrides() = %v, want empty", got)
	}
	got := flagOverrides(":9000", "debug")
	if got["server.http.addr"] != ":9000" || got["log.level"] != "debug" {
		t.Errorf("flagOverrides() = %v", got)
	}
}

func writeKeyPair(t *testing.T, dir string) (string, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}

	certFile := filepath.Join(dir, "tls.crt")
	keyFile := filepath.Join(dir, "tls.key")
	if err := os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600); err != nil {
		t.Fatal(err)
	}
	return certFile, keyFile
}
