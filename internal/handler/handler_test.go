package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/model"
	"github.com/jpassword/jpassword-go/internal/service"
	"github.com/jpassword/jpassword-go/internal/widget"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGeneratorHandler() *GeneratorHandler {
	return NewGeneratorHandler(service.NewGeneratorService(generator.NewSeededSource(3)), discardLogger())
}

func newTestWidgetHandler() *WidgetHandler {
	return NewWidgetHandler(widget.NewReducer(generator.NewSeededSource(3)), discardLogger())
}

func TestHandleGenerate(t *testing.T) {
	h := newTestGeneratorHandler()

	body := `{"length": 20, "lowercase": false, "numbers": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 20, resp.Length)
	assert.Regexp(t, `^[0-9]{20}$`, resp.Password)
	assert.Equal(t, []string{"numbers"}, resp.Classes)
}

func TestHandleGenerateEmptyBody(t *testing.T) {
	h := newTestGeneratorHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Regexp(t, `^[a-z]{8}$`, resp.Password)
}

func TestHandleGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "invalid json", body: `{`, wantErr: "invalid request body"},
		{name: "too short", body: `{"length": 4}`, wantErr: service.ErrLengthTooShort.Error()},
		{name: "too long", body: `{"length": 31}`, wantErr: service.ErrLengthTooLong.Error()},
		{name: "no classes", body: `{"lowercase": false}`, wantErr: service.ErrNoCharacterClasses.Error()},
	}

	h := newTestGeneratorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleGenerate(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestHandleGenerateTooLarge(t *testing.T) {
	h := newTestGeneratorHandler()

	body := `{"length": 12, "pad": "` + strings.Repeat("x", 2*maxGenerateBody) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleGenerateQuery(t *testing.T) {
	h := newTestGeneratorHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generate?length=30&lowercase=false&symbols=true", nil)
	rec := httptest.NewRecorder()
	h.HandleGenerateQuery(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Regexp(t, `^[!@#$^&()_]{30}$`, resp.Password)
	assert.Equal(t, []string{"symbols"}, resp.Classes)
}

func TestHandleGenerateQueryInvalid(t *testing.T) {
	h := newTestGeneratorHandler()

	for _, query := range []string{"length=abc", "numbers=perhaps"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/generate?"+query, nil)
		rec := httptest.NewRecorder()
		h.HandleGenerateQuery(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

var passwordRe = regexp.MustCompile(`<span class="password" id="password">([^<]*)</span>`)

func postForm(t *testing.T, h *WidgetHandler, form url.Values) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleAction(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestWidgetPageDefaults(t *testing.T) {
	h := newTestWidgetHandler()
	rec := httptest.NewRecorder()
	h.HandlePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `id="lowercase" name="lowercase" value="on" checked`)
	assert.Contains(t, body, `id="uppercase" name="uppercase" value="on">`)
	assert.Contains(t, body, `value="8"`)
	assert.NotContains(t, body, `class="password"`)
}

func TestWidgetGenerate(t *testing.T) {
	h := newTestWidgetHandler()

	body := postForm(t, h, url.Values{
		"action":  {"generate"},
		"length":  {"12"},
		"numbers": {"on"},
	})

	m := passwordRe.FindStringSubmatch(body)
	require.Len(t, m, 2, "password not rendered")
	assert.Regexp(t, `^[0-9]{12}$`, m[1])
	assert.Contains(t, body, widget.MsgGenerated)
	assert.Contains(t, body, `id="numbers" name="numbers" value="on" checked`)
}

func TestWidgetGenerateWithoutClassKeepsPassword(t *testing.T) {
	h := newTestWidgetHandler()

	body := postForm(t, h, url.Values{
		"action":   {"generate"},
		"length":   {"10"},
		"password": {"keepme123"},
	})

	m := passwordRe.FindStringSubmatch(body)
	require.Len(t, m, 2)
	assert.Equal(t, "keepme123", m[1])
	assert.Contains(t, body, widget.MsgNoSelection)
}

func TestWidgetClampsLength(t *testing.T) {
	h := newTestWidgetHandler()

	body := postForm(t, h, url.Values{"action": {"generate"}, "length": {"500"}, "lowercase": {"on"}})

	m := passwordRe.FindStringSubmatch(body)
	require.Len(t, m, 2)
	assert.Len(t, m[1], widget.MaxLength)
}

func TestWidgetCopy(t *testing.T) {
	h := newTestWidgetHandler()

	body := postForm(t, h, url.Values{"action": {"copy"}, "password": {"abcdefgh"}, "lowercase": {"on"}})

	assert.Contains(t, body, `navigator.clipboard.writeText("abcdefgh")`)
	assert.Contains(t, body, widget.MsgCopied)
	assert.Regexp(t, `},\s*1000\s*\);`, body)
}

func TestWidgetCopyWithoutPassword(t *testing.T) {
	h := newTestWidgetHandler()

	body := postForm(t, h, url.Values{"action": {"copy"}})

	assert.NotContains(t, body, "navigator.clipboard")
	assert.NotContains(t, body, widget.MsgCopied)
}

func TestWidgetUnknownAction(t *testing.T) {
	h := newTestWidgetHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("action=explode"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleAction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
