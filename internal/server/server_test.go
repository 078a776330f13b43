package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aek676/portfolio/internal/logging"
	"github.com/aek676/portfolio/site/content"
	"github.com/aek676/portfolio/site/i18n"
	"github.com/aek676/portfolio/site/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection(t *testing.T) *content.Collection {
	t.Helper()
	ts, err := tags.Resolve([]string{"rust", "docker"})
	require.NoError(t, err)
	return &content.Collection{Projects: []content.Project{
		{
			ID:    "grass",
			Data:  content.FrontMatter{Title: "Grass Field", Description: "Blades", GitHub: "https://github.com/aek676/grass"},
			Tags:  ts,
			Image: content.Image{Path: "grass.png", Format: "png", Width: 4, Height: 3},
			Body:  "# Grass <b>",
		},
		{
			ID:   "en/english-only",
			Lang: i18n.EN,
			Data: content.FrontMatter{Title: "English Only", Description: "x", GitHub: "https://example.com", Demo: "https://example.com/demo"},
		},
	}}
}

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	static := fstest.MapFS{
		"background.wasm": {Data: []byte("\x00asm")},
		"wasm_exec.js":    {Data: []byte("// go")},
	}
	files := fstest.MapFS{
		"grass.png": {Data: []byte("\x89PNG")},
		"grass.mdx": {Data: []byte("---\n---\n")},
	}
	s, err := New(Config{Static: static, Content: files}, testCollection(t), nil)
	require.NoError(t, err)
	return s, s.Handler()
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRedirectToNegotiatedLocale(t *testing.T) {
	_, h := newTestServer(t)

	for _, target := range []string{"/", "/portfolio", "/portfolio/"} {
		rec := get(t, h, target, "Accept-Language", "en-GB,en;q=0.9")
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/portfolio/en/", rec.Header().Get("Location"), target)
	}

	rec := get(t, h, "/")
	assert.Equal(t, "/portfolio/es/", rec.Header().Get("Location"))
}

func TestLocalePages(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/portfolio/es/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<html lang="es">`)
	assert.Contains(t, body, "Inicio")
	assert.Contains(t, body, "Cambiar idoma a English")
	assert.Contains(t, body, `href="/portfolio/en/"`)
	assert.Contains(t, body, "Grass Field")
	assert.NotContains(t, body, "English Only")

	rec = get(t, h, "/portfolio/en/projects/")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "View Project")
	assert.Contains(t, body, "English Only")
	assert.Contains(t, body, "Grass Field")
	assert.Contains(t, body, tags.Orange.Classes())
	assert.Contains(t, body, `src="/portfolio/content/grass.png"`)
	assert.Contains(t, body, `href="/portfolio/en/projects/grass/"`)
	assert.Contains(t, body, `width="4" height="3"`)

	rec = get(t, h, "/portfolio/en/about/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About me")
	assert.Contains(t, rec.Body.String(), `aria-current="page"`)
}

func TestProjectPage(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/portfolio/en/projects/en/english-only/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="https://example.com/demo"`)

	rec = get(t, h, "/portfolio/es/projects/grass/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# Grass &lt;b&gt;")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/es/projects/en/english-only/").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/es/projects/nope/").Code)
}

func TestUnknownPagesAndRedirects(t *testing.T) {
	_, h := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/es/blog/").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/es/project/").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/de/").Code)

	rec := get(t, h, "/portfolio/en/about")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/portfolio/en/about/", rec.Header().Get("Location"))
}

func TestStaticAndContentFiles(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/portfolio/background.wasm")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/wasm", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x00asm", rec.Body.String())

	rec = get(t, h, "/portfolio/content/grass.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/content/grass.mdx").Code)
}

func TestSitemap(t *testing.T) {
	s, h := newTestServer(t)

	urls := s.SitemapURLs()
	assert.Contains(t, urls, "https://aek676.github.io/portfolio/es/")
	assert.Contains(t, urls, "https://aek676.github.io/portfolio/en/about/")
	assert.Contains(t, urls, "https://aek676.github.io/portfolio/es/projects/grass/")
	assert.Contains(t, urls, "https://aek676.github.io/portfolio/en/projects/en/english-only/")
	assert.NotContains(t, urls, "https://aek676.github.io/portfolio/es/projects/en/english-only/")
	assert.Len(t, urls, 2*len(Pages)+3)

	rec := get(t, h, "/portfolio/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))
	assert.Contains(t, rec.Body.String(), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, rec.Body.String(), "<loc>https://aek676.github.io/portfolio/en/</loc>")
}

func TestNewWithoutProjects(t *testing.T) {
	s, err := New(Config{}, nil, nil)
	require.NoError(t, err)
	h := s.Handler()

	rec := get(t, h, "/portfolio/en/projects/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/portfolio/background.wasm").Code)
}

func TestLogRequests(t *testing.T) {
	var out bytes.Buffer
	log := logging.NewWriterLogger("http", false, &out, io.Discard)
	_, h := newTestServer(t)

	get(t, LogRequests(log, h), "/portfolio/es/blog/")
	get(t, LogRequests(log, h), "/portfolio/es/")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[http] INFO: GET /portfolio/es/blog/ 404")
	assert.Contains(t, lines[1], "GET /portfolio/es/ 200")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}), nil)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(b))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
