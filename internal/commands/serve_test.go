package commands_test

import (
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/redline/internal/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

// startServer runs `redline serve` in dir and waits for /healthz.
func startServer(t *testing.T, dir string, args ...string) string {
	t.Helper()
	addr := freeAddr(t)
	cmd := exec.Command(binaryPath, append([]string{"serve", "--addr", addr}, args...)...)
	cmd.Dir = dir
	cmd.Stderr = io.Discard
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Signal(os.Interrupt)
		_ = cmd.Wait()
	})

	base := "http://" + addr
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond)
	return base
}

func TestServe_PostingsAndMetrics(t *testing.T) {
	dir := t.TempDir()
	_, err := runRedline(t, "init", dir, "--name", "Test Biz", "--seed", "baseline")
	require.NoError(t, err)

	base := startServer(t, dir)

	bill := `{"bill_id":"B-1","supplier_id":"SUPP-CAST","date":"2025-01-03","amount":"1000"}`
	for _, want := range []int{http.StatusCreated, http.StatusConflict} {
		resp, err := http.Post(base+"/ap/bill", "application/json", strings.NewReader(bill))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode)
	}

	body := get(t, base+"/metrics", http.StatusOK)
	assert.Contains(t, body, `redline_journal_posts_total{result="posted"} 1`)
	assert.Contains(t, body, `redline_journal_rejections_total{reason="duplicate_id"} 1`)
}

func TestServe_MetricsDisabled(t *testing.T) {
	dir := t.TempDir()
	_, err := runRedline(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Server.Metrics = false
	require.NoError(t, config.Save(cfgPath, cfg))

	base := startServer(t, dir)
	get(t, base+"/metrics", http.StatusNotFound)
}

func get(t *testing.T, url string, wantStatus int) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServe_ReportsFromSeed(t *testing.T) {
	base := startServer(t, t.TempDir(), "--seed", "demo")

	body := get(t, base+"/finance/report/bs?as_of=2025-03-31", http.StatusOK)
	assert.Contains(t, body, `"605000"`)
}
