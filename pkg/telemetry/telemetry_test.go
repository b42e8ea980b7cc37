package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type report struct {
	kind   string
	id     string
	params []any
}

type recordingAPI struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingAPI) add(kind, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{kind: kind, id: id, params: params})
}

func (r *recordingAPI) ReportBroken(id string, params ...any)  { r.add("broken", id, params) }
func (r *recordingAPI) ReportWarning(id string, params ...any) { r.add("warning", id, params) }
func (r *recordingAPI) ReportDebug(msg string, params ...any)  { r.add("debug", msg, params) }
func (r *recordingAPI) ReportCount(id string, count int64)     { r.add("count", id, []any{count}) }

func (r *recordingAPI) ids(kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rep := range r.reports {
		if rep.kind == kind {
			out = append(out, rep.id)
		}
	}
	return out
}

type memoryOutput struct {
	mu       sync.Mutex
	messages map[string]string
}

func (m *memoryOutput) Write(id string, contents string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.messages == nil {
		m.messages = map[string]string{}
	}
	m.messages[id] = contents
}

func TestScopedAPI(t *testing.T) {
	rec := &recordingAPI{}
	scoped := NewScopedAPI("blockpalettes_client", rec)

	scoped.ReportBroken("client.search-blocks", errors.New("boom"))
	scoped.ReportWarning("client.palettes")
	scoped.ReportDebug("fetching")
	scoped.ReportCount("client.filtered", 3)

	require.Equal(t, []string{"blockpalettes_client: client.search-blocks"}, rec.ids("broken"))
	require.Equal(t, []string{"blockpalettes_client: client.palettes"}, rec.ids("warning"))
	require.Equal(t, []string{"blockpalettes_client: fetching"}, rec.ids("debug"))
	require.Equal(t, []string{"blockpalettes_client: client.filtered"}, rec.ids("count"))
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	rec := &recordingAPI{}
	out := &memoryOutput{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, rec, out)

	res, err := client.R().SetContext(context.Background()).Get("/api/palettes/popular-blocks.php")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())

	require.Equal(t, []string{report_resty_request, report_resty_response}, rec.ids("debug"))
	require.Empty(t, rec.ids("broken"))

	require.Contains(t, out.messages, "1")
	message := out.messages["1"]
	require.True(t, strings.HasPrefix(message, "---- REQUEST ----"))
	require.Contains(t, message, "/api/palettes/popular-blocks.php")
	require.Contains(t, message, `{"success":true}`)
}

func TestInstrumentRestyError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	rec := &recordingAPI{}
	client := resty.New().SetBaseURL(url)
	InstrumentResty(client, rec, nil)

	_, err := client.R().Get("/palette/1")
	require.Error(t, err)
	require.Equal(t, []string{report_resty_response}, rec.ids("broken"))
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	tel := SlogAPI{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	tel.ReportBroken("client.palette", errors.New("boom"), 42)
	tel.ReportWarning("client.palettes", "upstream reported failure")
	tel.ReportCount("client.palettes-with-blocks", 3)

	out := buf.String()
	require.Contains(t, out, `level=ERROR msg="broken component" id=client.palette err=boom params.1=42`)
	require.Contains(t, out, `level=WARN msg=warning id=client.palettes params.0="upstream reported failure"`)
	require.Contains(t, out, `level=DEBUG msg=count id=client.palettes-with-blocks n=3`)
}
