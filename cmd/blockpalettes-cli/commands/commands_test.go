package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const listingBody = `{
	"success": true,
	"total_results": 12,
	"total_pages": 2,
	"palettes": [{
		"id": 41, "user_id": 1, "date": "2023-01-01 12:30:00", "likes": 5,
		"blockOne": "stone", "blockTwo": "dirt", "blockThree": "sand",
		"blockFour": "gravel", "blockFive": "clay", "blockSix": "",
		"hidden": 0, "featured": 1, "time_ago": "1 day ago"
	}]
}`

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/palettes/all_palettes.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingBody))
	})
	mux.HandleFunc("/api/palettes/search-block.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "blocks": ["stone_bricks", "stone", "cobblestone"]}`))
	})
	mux.HandleFunc("/palette/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div class="single-block">stone</div><a class="palette-card" href="/palette/9">x</a>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd, _ := newRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPalettesCommand(t *testing.T) {
	server := newUpstream(t)

	out, err := execute(t, "--base-url", server.URL, "palettes", "--block", "stone", "--block", "dirt", "--sort", "popular")
	require.NoError(t, err)
	require.Contains(t, out, "stone, dirt, sand, gravel, clay")
	require.Contains(t, out, "upstream total: 12 results over 2 pages")
}

func TestPalettesCommandRejectsSort(t *testing.T) {
	server := newUpstream(t)

	_, err := execute(t, "--base-url", server.URL, "palettes", "--sort", "newest")
	require.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	server := newUpstream(t)

	out, err := execute(t, "--base-url", server.URL, "search", "stone")
	require.NoError(t, err)
	require.Contains(t, out, "1.00")
	require.Contains(t, out, "cobblestone")
	require.Less(t, strings.Index(out, "1.00"), strings.Index(out, "cobblestone"))
}

func TestScrapeCommand(t *testing.T) {
	server := newUpstream(t)

	out, err := execute(t, "--base-url", server.URL, "scrape", "3")
	require.NoError(t, err)
	require.Contains(t, out, "stone")
	require.Contains(t, out, "9")

	_, err = execute(t, "--base-url", server.URL, "scrape", "abc")
	require.ErrorContains(t, err, "invalid palette id")
}

func TestConfigFile(t *testing.T) {
	server := newUpstream(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "blockpalettes.json5")
	err := os.WriteFile(path, []byte(`{
		// points at the stub
		base_url: "`+server.URL+`",
		timeout_seconds: 5,
	}`), 0600)
	require.NoError(t, err)

	out, err := execute(t, "--config", path, "palettes")
	require.NoError(t, err)
	require.Contains(t, out, "upstream total: 12 results over 2 pages")

	_, err = execute(t, "--config", filepath.Join(dir, "missing.json5"), "palettes")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestClosestBlock(t *testing.T) {
	_, ok := closestBlock("stone", []string{"stone_bricks", "stone"})
	require.False(t, ok)

	_, ok = closestBlock("stone", nil)
	require.False(t, ok)

	suggestion, ok := closestBlock("oak log", []string{"spruce_log", "oak_log", "oak_planks"})
	require.True(t, ok)
	require.Equal(t, "oak_log", suggestion)
}
