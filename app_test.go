package sitepanel_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/eringen/sitepanel"
	"github.com/eringen/sitepanel/siteconfig"
	"github.com/eringen/sitepanel/views"
)

const testPassword = "correct horse"

func newTestApp(t *testing.T) (*sitepanel.App, *httptest.Server) {
	t.Helper()
	return newTestAppWith(t, siteconfig.NewMemorySlot(), t.TempDir())
}

func newTestAppWith(t *testing.T, slot siteconfig.Slot, staticDir string) (*sitepanel.App, *httptest.Server) {
	t.Helper()
	app := sitepanel.New(sitepanel.Config{
		AdminPassword: testPassword,
		SessionSecret: "0123456789abcdef0123456789abcdef",
		LogLevel:      "off",
	}, views.Defaults(),
		sitepanel.WithSlot(slot),
		sitepanel.WithStaticDir(staticDir),
	)
	if err := app.Setup(context.Background()); err != nil {
		t.Fatalf("setup: %v", err)
	}
	srv := httptest.NewServer(app.Echo)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return app, srv
}

// failingSlot reads like a MemorySlot but refuses every write.
type failingSlot struct {
	*siteconfig.MemorySlot
}

func (failingSlot) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func uploadedFiles(t *testing.T, staticDir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(staticDir, "uploads"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

type testClient struct {
	t    *testing.T
	base *url.URL
	http *http.Client
}

func newTestClient(t *testing.T, srv *httptest.Server) *testClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	base, _ := url.Parse(srv.URL)
	return &testClient{
		t:    t,
		base: base,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatal(err)
	}
	return resp, string(body)
}

func (c *testClient) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.base.String()+path, nil)
	if err != nil {
		c.t.Fatal(err)
	}
	return c.do(req)
}

// post submits form with the CSRF token from the cookie jar.
func (c *testClient) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", c.csrf())
	req, err := http.NewRequest(http.MethodPost, c.base.String()+path, strings.NewReader(form.Encode()))
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// postMultipart submits fields and files the way the editor form does.
func (c *testClient) postMultipart(path string, fields url.Values, files map[string][]byte) (*http.Response, string) {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("_csrf", c.csrf()); err != nil {
		c.t.Fatal(err)
	}
	for name, vals := range fields {
		for _, v := range vals {
			if err := mw.WriteField(name, v); err != nil {
				c.t.Fatal(err)
			}
		}
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile(name, name+".png")
		if err != nil {
			c.t.Fatal(err)
		}
		fw.Write(data)
	}
	if err := mw.Close(); err != nil {
		c.t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, c.base.String()+path, &body)
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func (c *testClient) csrf() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == "_csrf" {
			return ck.Value
		}
	}
	c.t.Fatal("no _csrf cookie; issue a GET first")
	return ""
}

func (c *testClient) login() {
	c.t.Helper()
	c.get("/admin/login/")
	resp, _ := c.post("/admin/login/", url.Values{"password": {testPassword}})
	if resp.StatusCode != http.StatusSeeOther {
		c.t.Fatalf("login status = %d, want 303", resp.StatusCode)
	}
}

func TestLandingShowsDefaults(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	resp, body := c.get("/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		"<title>AI Analytics</title>",
		`href="/wgrywanie-plikow"`,
		`href="/system-ai"`,
		`href="/analizator-zdjec"`,
		`href="/theme.css?v=`,
		`href="/admin/login/"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("landing page missing %q", want)
		}
	}
	if strings.Contains(body, `target="_blank"`) {
		t.Errorf("internal links must not open a new context")
	}
}

func TestThemeStylesheet(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	resp, body := c.get("/theme.css")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("content type = %q", ct)
	}
	want := ":root {\n" +
		"  --color-primary: #2563eb;\n" +
		"  --color-secondary: #1e40af;\n" +
		"  --color-accent: #3b82f6;\n" +
		"  --color-background: #f3f4f6;\n" +
		"  --color-text: #111827;\n" +
		"}\n"
	if body != want {
		t.Fatalf("theme.css =\n%s\nwant\n%s", body, want)
	}
}

func TestGateRedirectsToLoginWithReturnPath(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	resp, _ := c.get("/admin/installer/")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/login/?next=%2Fadmin%2Finstaller%2F" {
		t.Fatalf("Location = %q", loc)
	}

	resp, _ = c.get("/admin/")
	if loc := resp.Header.Get("Location"); loc != "/admin/login/" {
		t.Fatalf("dashboard Location = %q", loc)
	}
}

func TestLoginReturnsToRequestedPage(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	_, page := c.get("/admin/login/?next=%2Fadmin%2Finstaller%2F")
	if !strings.Contains(page, `name="next" value="/admin/installer/"`) {
		t.Fatalf("login form does not carry the return path")
	}

	resp, body := c.post("/admin/login/", url.Values{"password": {"wrong"}, "next": {"/admin/installer/"}})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", resp.StatusCode)
	}
	if !strings.Contains(body, "Nieprawidłowe hasło") {
		t.Errorf("missing error message")
	}

	resp, _ = c.post("/admin/login/", url.Values{"password": {testPassword}, "next": {"/admin/installer/"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/installer/" {
		t.Fatalf("Location = %q", loc)
	}

	resp, body = c.get("/admin/installer/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("installer status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `name="siteName" value="AI Analytics"`) {
		t.Errorf("installer does not show the current site name")
	}
}

func TestLoginRejectsForeignReturnPath(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.get("/admin/login/")

	resp, _ := c.post("/admin/login/", url.Values{"password": {testPassword}, "next": {"https://evil.example/"}})
	if loc := resp.Header.Get("Location"); loc != "/admin/" {
		t.Fatalf("Location = %q, want /admin/", loc)
	}
}

func TestPostWithoutCSRFIsForbidden(t *testing.T) {
	_, srv := newTestApp(t)
	resp, err := http.PostForm(srv.URL+"/admin/login/", url.Values{"password": {testPassword}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestInstallerSaveAppliesImmediately(t *testing.T) {
	app, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.login()

	resp, body := c.post("/admin/installer/", url.Values{
		"siteName":                     {"Nowa Analityka"},
		"colors.primary":               {"#ff0000"},
		"links.aiSystem.mode":          {"external"},
		"links.aiSystem.external":      {"https://ai.example.com"},
		"links.imageAnalyzer.internal": {"/zdjecia"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d\n%s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "Konfiguracja została zapisana") {
		t.Errorf("missing confirmation")
	}
	if !strings.Contains(body, `http-equiv="refresh"`) {
		t.Errorf("confirmation page does not return to the dashboard")
	}

	stored := app.Store.Load(context.Background())
	if stored.SiteName != "Nowa Analityka" || stored.Colors.Primary != "#ff0000" {
		t.Fatalf("stored = %+v", stored)
	}
	if stored.Colors.Secondary != "#1e40af" {
		t.Errorf("untouched color changed: %q", stored.Colors.Secondary)
	}

	_, css := c.get("/theme.css")
	if !strings.Contains(css, "--color-primary: #ff0000;") {
		t.Errorf("theme.css not updated:\n%s", css)
	}

	_, landing := c.get("/")
	for _, want := range []string{
		"<title>Nowa Analityka</title>",
		`href="https://ai.example.com" target="_blank" rel="noopener noreferrer"`,
		`href="/zdjecia"`,
		`href="/admin/"`,
	} {
		if !strings.Contains(landing, want) {
			t.Errorf("landing page missing %q", want)
		}
	}
}

func TestInstallerRejectsEmptySiteName(t *testing.T) {
	app, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.login()

	resp, body := c.post("/admin/installer/", url.Values{
		"siteName":       {"  "},
		"colors.primary": {"#ff0000"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(body, `class="field-error"`) {
		t.Errorf("missing inline error")
	}
	if !strings.Contains(body, `value="#ff0000"`) {
		t.Errorf("rejected draft should stay in the form")
	}

	stored := app.Store.Load(context.Background())
	if stored != siteconfig.Default() {
		t.Fatalf("rejected draft reached the store: %+v", stored)
	}
	_, css := c.get("/theme.css")
	if strings.Contains(css, "#ff0000") {
		t.Errorf("rejected draft reached the theme")
	}
}

func TestInstallerRejectsInvalidColor(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.login()

	resp, _ := c.post("/admin/installer/", url.Values{"colors.text": {"black"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	app, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.login()

	c.post("/admin/installer/", url.Values{"siteName": {"Inna"}})
	resp, _ := c.post("/admin/reset/", nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/?msg=reset" {
		t.Fatalf("Location = %q", loc)
	}
	if got := app.Store.Load(context.Background()); got != siteconfig.Default() {
		t.Fatalf("after reset = %+v", got)
	}
	_, dash := c.get("/admin/?msg=reset")
	if !strings.Contains(dash, "Przywrócono konfigurację domyślną") {
		t.Errorf("dashboard does not confirm the reset")
	}
}

func TestLogoutClosesTheGate(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.login()

	resp, _ := c.post("/admin/logout/", nil)
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("logout Location = %q", loc)
	}
	resp, _ = c.get("/admin/")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("dashboard after logout status = %d, want 303", resp.StatusCode)
	}
}

func TestWebManifestFollowsConfig(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	resp, body := c.get("/site.webmanifest")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/manifest+json") {
		t.Fatalf("content type = %q", ct)
	}
	var m struct {
		Name            string `json:"name"`
		ThemeColor      string `json:"theme_color"`
		BackgroundColor string `json:"background_color"`
		Icons           []struct {
			Src  string `json:"src"`
			Type string `json:"type"`
		} `json:"icons"`
	}
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if m.Name != "AI Analytics" || m.ThemeColor != "#2563eb" || m.BackgroundColor != "#f3f4f6" {
		t.Fatalf("manifest = %+v", m)
	}
	if len(m.Icons) != 1 || m.Icons[0].Src != "/logo.svg" || m.Icons[0].Type != "image/svg+xml" {
		t.Fatalf("icons = %+v", m.Icons)
	}
}

func TestSitemapListsSameOriginModules(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)
	c.login()
	c.post("/admin/installer/", url.Values{
		"links.aiSystem.mode":     {"external"},
		"links.aiSystem.external": {"https://ai.example.com"},
	})

	_, body := c.get("/sitemap.xml")
	for _, want := range []string{
		"<loc>http://localhost:3000/</loc>",
		"<loc>http://localhost:3000/wgrywanie-plikow/</loc>",
		"<loc>http://localhost:3000/analizator-zdjec/</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
	if strings.Contains(body, "ai.example.com") || strings.Contains(body, "system-ai") {
		t.Errorf("sitemap lists an external module:\n%s", body)
	}
}

func TestRobotsAndLogo(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	_, robots := c.get("/robots.txt")
	if !strings.Contains(robots, "Disallow: /admin/") || !strings.Contains(robots, "Sitemap: http://localhost:3000/sitemap.xml") {
		t.Errorf("robots.txt = %q", robots)
	}

	resp, logo := c.get("/logo.svg")
	if resp.StatusCode != http.StatusOK || !strings.Contains(logo, "<svg") {
		t.Errorf("logo status = %d", resp.StatusCode)
	}
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	_, srv := newTestApp(t)
	c := newTestClient(t, srv)

	resp, body := c.get("/nie-ma/")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body, "Nie znaleziono strony") {
		t.Errorf("missing not found page")
	}
}

func TestSetupRequiresSecrets(t *testing.T) {
	app := sitepanel.New(sitepanel.Config{SessionSecret: "x"}, views.Defaults(),
		sitepanel.WithSlot(siteconfig.NewMemorySlot()))
	if err := app.Setup(context.Background()); err == nil {
		t.Fatal("expected error without AdminPassword")
	}
}

func TestOpeningEditorWithoutConfirmingChangesNothing(t *testing.T) {
	slot := siteconfig.NewMemorySlot()
	app, srv := newTestAppWith(t, slot, t.TempDir())
	var notified atomic.Int32
	app.Store.Subscribe(func(siteconfig.SiteConfig) { notified.Add(1) })

	c := newTestClient(t, srv)
	c.login()
	resp, _ := c.get("/admin/installer/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("installer status = %d", resp.StatusCode)
	}
	c.get("/admin/")
	c.get("/")

	_, ok, err := slot.Get(context.Background(), siteconfig.DefaultKey)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("leaving the editor wrote a record")
	}
	if n := notified.Load(); n != 0 {
		t.Fatalf("subscribers notified %d times, want 0", n)
	}
}

func TestInstallerUploadsLogoAndBanner(t *testing.T) {
	dir := t.TempDir()
	app, srv := newTestAppWith(t, siteconfig.NewMemorySlot(), dir)
	c := newTestClient(t, srv)
	c.login()

	resp, body := c.postMultipart("/admin/installer/", nil, map[string][]byte{
		"logo.file":   testPNG(t),
		"banner.file": testPNG(t),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	cfg := app.Store.Load(context.Background())
	if cfg.Logo.Path != "/public/uploads/logo-logo-file.jpg" {
		t.Errorf("logo path = %q", cfg.Logo.Path)
	}
	if cfg.Banner.URL != "/public/uploads/banner-banner-file.jpg" {
		t.Errorf("banner url = %q", cfg.Banner.URL)
	}
	if got := uploadedFiles(t, dir); len(got) != 2 {
		t.Fatalf("uploads = %v, want 2 files", got)
	}
}

func TestRejectedBannerLeavesNoUploads(t *testing.T) {
	dir := t.TempDir()
	app, srv := newTestAppWith(t, siteconfig.NewMemorySlot(), dir)
	c := newTestClient(t, srv)
	c.login()

	resp, body := c.postMultipart("/admin/installer/", nil, map[string][]byte{
		"logo.file":   testPNG(t),
		"banner.file": []byte("not an image"),
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(body, "invalid image") {
		t.Errorf("missing banner error")
	}
	if got := uploadedFiles(t, dir); len(got) != 0 {
		t.Fatalf("uploads left behind: %v", got)
	}
	if got := app.Store.Load(context.Background()).Logo.Path; got != siteconfig.Default().Logo.Path {
		t.Fatalf("logo path changed to %q", got)
	}
}

func TestFailedSaveRemovesUploads(t *testing.T) {
	dir := t.TempDir()
	_, srv := newTestAppWith(t, failingSlot{siteconfig.NewMemorySlot()}, dir)
	c := newTestClient(t, srv)
	c.login()

	resp, _ := c.postMultipart("/admin/installer/", nil, map[string][]byte{"logo.file": testPNG(t)})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if got := uploadedFiles(t, dir); len(got) != 0 {
		t.Fatalf("uploads left behind: %v", got)
	}
}
