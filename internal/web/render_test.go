package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

type row struct {
	ID       int64
	Name     string
	Breed    string
	Birthday time.Time
}

func TestNewRendererParsesAllPages(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	for _, page := range []string{
		"home",
		"clients/repository", "clients/form",
		"pets/repository", "pets/form",
		"medicines/repository", "medicines/form",
		"products/repository", "products/form",
	} {
		if !r.Has(page) {
			t.Fatalf("missing page %q", page)
		}
	}
}

func TestRenderFormShowsErrorsAndEchoesInput(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rr := httptest.NewRecorder()
	err = r.Render(rr, http.StatusOK, "clients/form", FormData{
		Action: "/clientes/nuevo/",
		Values: form.Values{"name": "Juan <b>", "phone": "abc"},
		Errors: validation.Errors{"phone": "El teléfono sólo puede contener números"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := rr.Body.String()
	if !strings.Contains(body, `<div class="invalid-feedback">El teléfono sólo puede contener números</div>`) {
		t.Fatalf("expected invalid-feedback, got %s", body)
	}
	if !strings.Contains(body, `value="Juan &lt;b&gt;"`) {
		t.Fatalf("expected escaped echoed value, got %s", body)
	}
	if !strings.Contains(body, `data-testid="navbar-Clientes"`) {
		t.Fatalf("expected navbar in layout")
	}
}

func TestRenderEmptyListing(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rr := httptest.NewRecorder()
	if err := r.Render(rr, http.StatusOK, "pets/repository", ListData[row]{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(rr.Body.String(), "No existen mascotas") {
		t.Fatalf("expected empty message, got %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	items := []row{{ID: 7, Name: "Firulais", Breed: "Caniche", Birthday: time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)}}
	if err := r.Render(rr, http.StatusOK, "pets/repository", ListData[row]{Items: items}); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "2020-03-04") || !strings.Contains(body, `/mascotas/editar/7/`) {
		t.Fatalf("unexpected listing: %s", body)
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r.Render(httptest.NewRecorder(), http.StatusOK, "nope", nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}
