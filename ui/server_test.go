package ui

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gostock/adapters/excel"
	"gostock/app"
	"gostock/domain/record"
	"gostock/internal/session"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) (*testClient, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	service := app.NewStockService(excel.NewStore(excel.DefaultStoreConfig()), dir, nil)
	sessions := session.NewStore(session.Defaults{FileName: "stock_data.xlsx", ColumnCount: 2}, time.Hour)

	server, err := NewServer(service, sessions, Config{
		Title:         "Stock Management",
		IntroMarkdown: "Keep **stock** here.",
	}, nil)
	require.NoError(t, err)

	return &testClient{t: t, handler: server.Handler()}, dir
}

func (tc *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	tc.handler.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		tc.cookies = cookies
	}
	return w
}

func TestHealth(t *testing.T) {
	tc, _ := newTestServer(t)
	w := tc.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexPromptsForMissingFile(t *testing.T) {
	tc, dir := newTestServer(t)

	w := tc.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<strong>stock</strong>")
	assert.Contains(t, body, `value="stock_data.xlsx"`)
	assert.Contains(t, body, `value="Column_1"`)
	assert.Contains(t, body, `value="Column_2"`)
	assert.Contains(t, body, "does not exist")
	assert.Contains(t, body, "Create File")
	assert.NotContains(t, body, "Add to Stock")
	assert.NoFileExists(t, filepath.Join(dir, "stock_data.xlsx"))
	require.Len(t, tc.cookies, 1)
}

func TestCreateAddDownloadFlow(t *testing.T) {
	tc, dir := newTestServer(t)
	tc.do(http.MethodGet, "/", nil)

	w := tc.do(http.MethodPost, "/create", url.Values{
		"file_name":    {"parts.xlsx"},
		"column_count": {"2"},
		"column_name":  {"Name", "Qty"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Created parts.xlsx.")
	assert.FileExists(t, filepath.Join(dir, "parts.xlsx"))

	w = tc.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add to Stock")
	assert.Contains(t, w.Body.String(), `name="item[Name]"`)

	w = tc.do(http.MethodGet, "/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = tc.do(http.MethodPost, "/items", url.Values{"item[Name]": {"Bolt"}, "item[Qty]": {"10"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "New item added to the stock!")
	assert.Contains(t, body, "<td>Bolt</td>")
	assert.Contains(t, body, `href="/download"`)

	w = tc.do(http.MethodGet, "/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, XLSXContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="parts.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Qty"}, {"Bolt", "10"}}, rows)
}

func TestExistingHeaderOverridesDeclaredColumns(t *testing.T) {
	tc, dir := newTestServer(t)
	store := excel.NewStore(excel.DefaultStoreConfig())
	table, err := record.FromRows(record.Schema{"Name", "Qty"}, []record.Row{{"Bolt", "10"}})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), table, filepath.Join(dir, "stock_data.xlsx")))

	w := tc.do(http.MethodPost, "/settings", url.Values{"column_count": {"3"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `value="Column_3"`)
	assert.Contains(t, body, "replace the column names above")
	assert.Contains(t, body, `name="item[Qty]"`)
	assert.NotContains(t, body, `name="item[Column_3]"`)

	w = tc.do(http.MethodPost, "/items", url.Values{"item[Name]": {"Nut"}, "item[Qty]": {"5"}})
	require.Equal(t, http.StatusOK, w.Code)

	reloaded, err := store.Load(context.Background(), filepath.Join(dir, "stock_data.xlsx"), nil)
	require.NoError(t, err)
	assert.Equal(t, []record.Row{{"Bolt", "10"}, {"Nut", "5"}}, reloaded.Rows())
}

func TestMalformedFileShowsGenericError(t *testing.T) {
	tc, dir := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stock_data.xlsx"), []byte("nope"), 0o644))

	w := tc.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "could not be read as a spreadsheet")
}

func TestAddItemWithoutFileIsConflict(t *testing.T) {
	tc, _ := newTestServer(t)

	w := tc.do(http.MethodPost, "/items", url.Values{"item[Column_1]": {"x"}})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSettingsClampColumnCount(t *testing.T) {
	tc, _ := newTestServer(t)

	w := tc.do(http.MethodPost, "/settings", url.Values{"column_count": {"0"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="column_count" min="1" max="100" value="1"`)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "stock.xlsx", downloadName("dir/stock.xlsx"))
	assert.Equal(t, "evil.xlsx", downloadName("evil\".xlsx"))
	assert.Equal(t, "stock_data.xlsx", downloadName("  "))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="parts.xlsx"`, contentDisposition("parts.xlsx"))
	assert.Equal(t,
		`attachment; filename="St_ck list.xlsx"; filename*=UTF-8''St%C3%BCck%20list.xlsx`,
		contentDisposition("Stück list.xlsx"))
}

func TestTemplateFailureIsPlainText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := app.NewStockService(excel.NewStore(excel.DefaultStoreConfig()), t.TempDir(), nil)
	sessions := session.NewStore(session.Defaults{FileName: "stock_data.xlsx", ColumnCount: 2}, time.Hour)
	server, err := NewServer(service, sessions, Config{}, nil)
	require.NoError(t, err)
	server.templates = template.Must(template.New("index.html").Parse(`{{.NoSuchField}}`))

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to render page.", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	out := string(RenderMarkdown("Hi <script>alert(1)</script> *there*"))
	assert.Contains(t, out, "<em>there</em>")
	assert.NotContains(t, out, "<script>")
}
