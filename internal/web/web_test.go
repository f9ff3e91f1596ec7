package web

import (
	"bytes"
	"catalogconsole/app"
	"catalogconsole/infra/catalogapi"
	"catalogconsole/internal/middleware"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	Method        string
	Path          string
	Authorization string
}

type backend struct {
	mu    sync.Mutex
	calls []backendCall
}

func (b *backend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, call := range b.calls {
		if call.Method == method && call.Path == path {
			n++
		}
	}
	return n
}

func (b *backend) last() backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.calls = append(b.calls, backendCall{Method: r.Method, Path: r.URL.Path, Authorization: r.Header.Get("Authorization")})
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.Method + " " + r.URL.Path {
	case "POST /login":
		if strings.Contains(string(body), `"password":"bad"`) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"jwt"}`))
	case "GET /categories":
		_, _ = w.Write([]byte(`[{"_id":"c1","name":"Minuman"}]`))
	case "POST /categories":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"c2","name":"Snack"}`))
	case "GET /products":
		_, _ = w.Write([]byte(`[{"_id":"p1","nama":"Kopi","category_id":"c1","harga":12.5,"jml_stok":3}]`))
	case "POST /products":
		w.WriteHeader(http.StatusCreated)
	case "PUT /products/p1", "DELETE /products/p1", "DELETE /categories/c1":
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// browser keeps the session cookie between requests like a real client would.
type browser struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newBrowser(t *testing.T) (*browser, *backend) {
	t.Helper()

	b := &backend{}
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)

	client := catalogapi.NewClient(server.URL, "/login", time.Second)
	handlers := app.NewHandlers(app.Dependencies{
		Gateway:           client,
		Authenticator:     client,
		LowStockThreshold: 5,
		ImportConcurrency: 2,
	})

	fiberApp := fiber.New(fiber.Config{Views: NewEngine()})
	NewConsole(handlers, middleware.NewSessionStore(nil, time.Hour, false)).Register(fiberApp)

	return &browser{t: t, app: fiberApp}, b
}

func (br *browser) do(req *http.Request) (*http.Response, string) {
	br.t.Helper()

	if br.cookie != nil {
		req.AddCookie(br.cookie)
	}
	resp, err := br.app.Test(req, -1)
	require.NoError(br.t, err)

	for _, cookie := range resp.Cookies() {
		if cookie.Name != middleware.SessionCookie {
			continue
		}
		if cookie.Value == "" || cookie.MaxAge < 0 {
			br.cookie = nil
		} else {
			br.cookie = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
		}
	}

	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (br *browser) get(path string) (*http.Response, string) {
	return br.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (br *browser) post(path string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return br.do(req)
}

func (br *browser) login() {
	br.t.Helper()
	resp, _ := br.post("/login", url.Values{"username": {"admin"}, "password": {"pw"}})
	require.Equal(br.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(br.t, "/dashboard", resp.Header.Get("Location"))
}

func TestConsoleRequiresLogin(t *testing.T) {
	br, b := newBrowser(t)

	for _, path := range []string{"/dashboard", "/categories", "/products/new", "/activity"} {
		resp, _ := br.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
	assert.Zero(t, b.count(http.MethodGet, "/products"))
}

func TestLoginShowsDashboard(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	resp, body := br.get("/dashboard")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Signed in")
	assert.Contains(t, body, "Kopi")
	assert.Contains(t, body, "Minuman")
	assert.Contains(t, body, "12.50")
	assert.Contains(t, body, "Logout")
	assert.Equal(t, "Bearer jwt", b.last().Authorization)

	_, body = br.get("/dashboard")
	assert.NotContains(t, body, "Signed in")
}

func TestLoginRejected(t *testing.T) {
	br, _ := newBrowser(t)

	resp, body := br.post("/login", url.Values{"username": {"admin"}, "password": {"bad"}})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `value="admin"`)

	resp, _ = br.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestDashboardCategoryFilter(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	resp, body := br.get("/dashboard?category_id=c1")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<option value="c1" selected>`)
	assert.Equal(t, 1, b.count(http.MethodGet, "/products"))
}

func TestCreateCategory(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	resp, body := br.post("/categories", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Category name cannot be empty.")
	assert.Zero(t, b.count(http.MethodPost, "/categories"))

	resp, _ = br.post("/categories", url.Values{"name": {"Snack"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/categories", resp.Header.Get("Location"))
	assert.Equal(t, 1, b.count(http.MethodPost, "/categories"))

	_, body = br.get("/categories")
	assert.Contains(t, body, "Category added successfully")
}

func TestDeleteCategory(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	_, body := br.get("/categories/c1/delete")
	assert.Contains(t, body, "Are you sure you want to delete this category?")

	resp, _ := br.get("/categories/nope/delete")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = br.get("/categories")
	assert.Contains(t, body, "Invalid category to delete")

	resp, _ = br.post("/categories/c1/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, b.count(http.MethodDelete, "/categories/c1"))
	_, body = br.get("/categories")
	assert.Contains(t, body, "Category deleted successfully")
}

func TestAddProductFormKeepsInputOnFailure(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	resp, body := br.post("/products", url.Values{"nama": {"Teh"}, "category_id": {"c1"}, "harga": {"abc"}, "jml_stok": {"2"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Failed to add product")
	assert.Contains(t, body, `value="Teh"`)
	assert.Zero(t, b.count(http.MethodPost, "/products"))
}

func TestAddProduct(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	resp, _ := br.post("/products", url.Values{"nama": {"Teh"}, "category_id": {"c1"}, "harga": {"4.5"}, "jml_stok": {"2"}})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, b.count(http.MethodPost, "/products"))
	_, body := br.get("/dashboard")
	assert.Contains(t, body, "Product added successfully")
}

func TestEditProduct(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	resp, body := br.get("/products/p1/edit")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Kopi"`)
	assert.Contains(t, body, `action="/products/p1"`)

	resp, _ = br.post("/products/p1", url.Values{"nama": {"Kopi Susu"}, "category_id": {"c1"}, "harga": {"13"}, "jml_stok": {"4"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, b.count(http.MethodPut, "/products/p1"))
	_, body = br.get("/dashboard")
	assert.Contains(t, body, "Product updated successfully")

	resp, _ = br.get("/products/unknown/edit")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	_, body := br.get("/products/p1/delete")
	assert.Contains(t, body, "Are you sure you want to delete this product?")

	resp, _ := br.post("/products/p1/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, b.count(http.MethodDelete, "/products/p1"))
	_, body = br.get("/dashboard")
	assert.Contains(t, body, "Product deleted successfully")
}

func TestExportProducts(t *testing.T) {
	br, _ := newBrowser(t)
	br.login()

	resp, body := br.get("/products/export.csv")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(body, "id,name,category_id,price,stock\n"))
}

func TestActivityWithoutStore(t *testing.T) {
	br, _ := newBrowser(t)
	br.login()

	resp, body := br.get("/activity")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "not configured")
}

func TestLogout(t *testing.T) {
	br, _ := newBrowser(t)
	br.login()

	resp, _ := br.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = br.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestImportRendersReport(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,category_id,price,stock\nTeh,c1,4.5,2\n,c1,3,1\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/import", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, body := br.do(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Equal(t, 1, b.count(http.MethodPost, "/products"))
	assert.Contains(t, body, "Imported 1 products, 1 failed")
	assert.Contains(t, body, "<td>3</td>")
	assert.Contains(t, body, "name is required")
}

func TestImportRejectsEmptyFile(t *testing.T) {
	br, b := newBrowser(t)
	br.login()

	req := httptest.NewRequest(http.MethodPost, "/products/import", strings.NewReader("name,category_id,price,stock\n"))
	req.Header.Set("Content-Type", "text/csv")
	resp, body := br.do(req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Invalid CSV file")
	assert.Zero(t, b.count(http.MethodPost, "/products"))
}

func TestUnknownPageIsNotFound(t *testing.T) {
	br, _ := newBrowser(t)

	resp, _ := br.get("/api/v1/nothing-here")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
