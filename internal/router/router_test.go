package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"vetsoft/internal/adapters/storage/memory"
	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/domain/products"
	"vetsoft/internal/platform/idgen"
	"vetsoft/internal/platform/validation"
	"vetsoft/internal/router"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	v, err := validation.New()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	ids, err := idgen.NewSnowflake(1)
	if err != nil {
		t.Fatalf("idgen: %v", err)
	}

	h, err := router.NewRouter(router.Options{
		Services: router.Services{
			Clients:   clients.NewService(memory.NewClientRepo(), ids, v),
			Pets:      pets.NewService(memory.NewPetRepo(), ids, v),
			Medicines: medicines.NewService(memory.NewMedicineRepo(), ids, v),
			Products:  products.NewService(memory.NewProductRepo(), ids, v),
		},
	})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return h
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(newHandler(t))
	t.Cleanup(ts.Close)
	return ts
}

// noRedirect deja ver el 302 en vez de seguirlo.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func TestHTTP_HealthAndHome(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/", nil)
	if st != http.StatusOK {
		t.Fatalf("home: %d", st)
	}
	for _, testid := range []string{"navbar-Home", "navbar-Clientes", "navbar-Mascotas", "navbar-Medicinas", "navbar-Productos"} {
		if !strings.Contains(string(body), `data-testid="`+testid+`"`) {
			t.Fatalf("home without %s", testid)
		}
	}
}

func TestHTTP_ClientsFormFlow(t *testing.T) {
	ts := newServer(t)

	// 1) Listado vacío
	{
		st, body := doReq(t, ts.URL, "GET", "/clientes/", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "No existen clientes") {
			t.Fatalf("expected empty listing, got %d %s", st, body)
		}
	}

	// 2) Formulario vacío
	{
		st, body := doReq(t, ts.URL, "GET", "/clientes/nuevo/", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "Guardar") {
			t.Fatalf("expected form, got %d", st)
		}
	}

	// 3) Envío inválido: 200 con errores y el input re-mostrado
	{
		st, body := postForm(t, ts.URL, "/clientes/nuevo/", url.Values{
			"name":  {"Juan Sebastián Veron"},
			"phone": {"221555232"},
			"email": {"brujita75"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 on invalid form, got %d", st)
		}
		if !strings.Contains(string(body), "El correo electrónico debe terminar en @vetsoft.com") {
			t.Fatalf("expected email error, got %s", body)
		}
		if !strings.Contains(string(body), `value="brujita75"`) {
			t.Fatalf("expected echoed input")
		}
	}

	// 4) Alta válida: 302 al listado
	{
		st, _ := postForm(t, ts.URL, "/clientes/nuevo/", url.Values{
			"name":    {"Juan Sebastián Veron"},
			"phone":   {"54221555232"},
			"email":   {"brujita75@vetsoft.com"},
			"address": {"13 y 44"},
		})
		if st != http.StatusFound {
			t.Fatalf("expected 302 after create, got %d", st)
		}
	}

	id := firstID(t, ts.URL, "/api/v1/clients")

	// 5) Listado con acciones
	{
		_, body := doReq(t, ts.URL, "GET", "/clientes/", nil)
		for _, want := range []string{"Juan Sebastián Veron", "/clientes/editar/" + id + "/", "Formulario de eliminación de cliente", `name="client_id" value="` + id + `"`} {
			if !strings.Contains(string(body), want) {
				t.Fatalf("listing without %q", want)
			}
		}
	}

	// 6) Edición: teléfono vacío no toca el valor guardado
	{
		st, body := doReq(t, ts.URL, "GET", "/clientes/editar/"+id+"/", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `value="54221555232"`) {
			t.Fatalf("edit form: %d", st)
		}

		st, _ = postForm(t, ts.URL, "/clientes/editar/"+id+"/", url.Values{
			"name":  {"Guido Carrillo"},
			"phone": {""},
		})
		if st != http.StatusFound {
			t.Fatalf("expected 302 after update, got %d", st)
		}

		var c map[string]any
		_, raw := doReq(t, ts.URL, "GET", "/api/v1/clients/"+id, nil)
		_ = json.Unmarshal(raw, &c)
		if c["name"] != "Guido Carrillo" || c["phone"] != "54221555232" || c["email"] != "brujita75@vetsoft.com" {
			t.Fatalf("unexpected client after update: %v", c)
		}
	}

	// 7) POST a nuevo/ con id también actualiza
	{
		st, _ := postForm(t, ts.URL, "/clientes/nuevo/", url.Values{"id": {id}, "address": {"7 y 50"}})
		if st != http.StatusFound {
			t.Fatalf("expected 302 on update via id field, got %d", st)
		}
		var list []map[string]any
		_, raw := doReq(t, ts.URL, "GET", "/api/v1/clients", nil)
		_ = json.Unmarshal(raw, &list)
		if len(list) != 1 || list[0]["address"] != "7 y 50" {
			t.Fatalf("expected single updated client, got %v", list)
		}
	}

	// 8) Baja
	{
		st, _ := postForm(t, ts.URL, "/clientes/eliminar/", url.Values{"client_id": {id}})
		if st != http.StatusFound {
			t.Fatalf("expected 302 after delete, got %d", st)
		}
		st, _ = postForm(t, ts.URL, "/clientes/eliminar/", url.Values{"client_id": {id}})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_MedicinesFormFlow(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/medicines/", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "No existen medicinas") {
		t.Fatalf("expected empty listing, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/medicines/nuevo/", nil); st != http.StatusOK {
		t.Fatalf("expected form, got %d", st)
	}

	st, _ = postForm(t, ts.URL, "/medicines/nuevo/", url.Values{
		"name":        {"Paracetamol"},
		"description": {"Para el dolor"},
		"dose":        {"5"},
	})
	if st != http.StatusFound {
		t.Fatalf("expected 302 after create, got %d", st)
	}

	id := firstID(t, ts.URL, "/api/v1/medicines")

	_, body = doReq(t, ts.URL, "GET", "/medicines/", nil)
	for _, want := range []string{"/medicines/editar/" + id + "/", `action="/medicines/eliminar/"`, `name="medicine_id" value="` + id + `"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("listing without %q", want)
		}
	}

	// Dosis vacía: se conserva la guardada
	st, _ = postForm(t, ts.URL, "/medicines/editar/"+id+"/", url.Values{"name": {"Ibuprofeno"}, "dose": {""}})
	if st != http.StatusFound {
		t.Fatalf("expected 302 after update, got %d", st)
	}
	var m map[string]any
	_, raw := doReq(t, ts.URL, "GET", "/api/v1/medicines/"+id, nil)
	_ = json.Unmarshal(raw, &m)
	if m["name"] != "Ibuprofeno" || m["dose"] != float64(5) {
		t.Fatalf("unexpected medicine after update: %v", m)
	}

	// Dosis inválida: 200 con el error y nada se escribe
	st, body = postForm(t, ts.URL, "/medicines/editar/"+id+"/", url.Values{"dose": {"11"}})
	if st != http.StatusOK || !strings.Contains(string(body), "La dosis debe ser entre 1 y 10") {
		t.Fatalf("expected dose error, got %d", st)
	}
	_, raw = doReq(t, ts.URL, "GET", "/api/v1/medicines/"+id, nil)
	_ = json.Unmarshal(raw, &m)
	if m["dose"] != float64(5) {
		t.Fatalf("dose must be untouched, got %v", m["dose"])
	}

	if st, _ := postForm(t, ts.URL, "/medicines/eliminar/", url.Values{"medicine_id": {id}}); st != http.StatusFound {
		t.Fatalf("expected 302 after delete, got %d", st)
	}
	if st, _ := postForm(t, ts.URL, "/medicines/eliminar/", url.Values{"medicine_id": {id}}); st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", st)
	}
}

func TestHTTP_FormFieldLengthLimits(t *testing.T) {
	ts := newServer(t)

	st, body := postForm(t, ts.URL, "/clientes/nuevo/", url.Values{
		"name":  {strings.Repeat("a", 101)},
		"phone": {strings.Repeat("1", 16)},
		"email": {"brujita75@vetsoft.com"},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 on too long fields, got %d", st)
	}
	for _, msg := range []string{"El nombre no puede superar los 100 caracteres", "El teléfono no puede superar los 15 dígitos"} {
		if !strings.Contains(string(body), msg) {
			t.Fatalf("missing %q", msg)
		}
	}

	var list []map[string]any
	_, raw := doReq(t, ts.URL, "GET", "/api/v1/clients", nil)
	_ = json.Unmarshal(raw, &list)
	if len(list) != 0 {
		t.Fatalf("nothing must be stored, got %v", list)
	}
}

func TestHTTP_BodyTooLarge(t *testing.T) {
	h := newHandler(t)
	big := strings.Repeat("a", 2<<20)

	formBody := url.Values{"name": {big}, "phone": {"221555232"}, "email": {"brujita75@vetsoft.com"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/clientes/nuevo/", strings.NewReader(formBody))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 on form, got %d", rec.Code)
	}

	jsonBody, _ := json.Marshal(map[string]string{"name": big, "phone": "221555232", "email": "brujita75@vetsoft.com"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 on api, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))
	var list []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Fatalf("nothing must be stored, got %v", list)
	}
}

func TestHTTP_NotFoundPaths(t *testing.T) {
	ts := newServer(t)

	for _, path := range []string{"/mascotas/editar/999/", "/medicines/editar/abc/", "/productos/editar/-1/", "/nada/"} {
		if st, _ := doReq(t, ts.URL, "GET", path, nil); st != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, st)
		}
	}
	if st, _ := postForm(t, ts.URL, "/productos/eliminar/", url.Values{"product_id": {"x"}}); st != http.StatusNotFound {
		t.Fatalf("expected 404 on bad delete id, got %d", st)
	}
}

func TestHTTP_FormValidationMessages(t *testing.T) {
	ts := newServer(t)

	cases := []struct {
		path string
		form url.Values
		want []string
	}{
		{"/mascotas/nuevo/", url.Values{}, []string{"Por favor ingrese un nombre", "Por favor ingrese la raza", "Por favor ingrese una fecha"}},
		{"/mascotas/nuevo/", url.Values{"name": {"Firulais"}, "breed": {"Caniche"}, "birthday": {"2999-01-01"}}, []string{"La fecha de cumpleaños no puede ser posterior a hoy"}},
		{"/medicines/nuevo/", url.Values{"name": {"Paracetamol"}, "description": {"Dolor"}, "dose": {"11"}}, []string{"La dosis debe ser entre 1 y 10"}},
		{"/productos/nuevo/", url.Values{"name": {"Alimento"}, "type": {"alimento"}, "price": {"0x1p-2"}, "stock": {"1"}}, []string{"Por favor ingrese un precio válido mayor a cero"}},
		{"/productos/nuevo/", url.Values{"name": {"Alimento"}, "type": {"alimento"}, "price": {"0"}, "stock": {"-1"}}, []string{"Por favor ingrese un precio válido mayor a cero", "El stock debe ser un número entero mayor o igual a cero"}},
	}

	for _, tc := range cases {
		st, body := postForm(t, ts.URL, tc.path, tc.form)
		if st != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.path, st)
		}
		if !strings.Contains(string(body), "invalid-feedback") {
			t.Fatalf("%s: expected invalid-feedback", tc.path)
		}
		for _, msg := range tc.want {
			if !strings.Contains(string(body), msg) {
				t.Fatalf("%s: missing %q", tc.path, msg)
			}
		}
	}
}

func TestHTTP_API(t *testing.T) {
	ts := newServer(t)

	// Alta con números en JSON
	st, body := doReq(t, ts.URL, "POST", "/api/v1/products", map[string]any{
		"name": "Alimento", "type": "alimento", "price": 1500.5, "stock": 20,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, body)
	}
	var p map[string]any
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	id, _ := p["id"].(string)
	if id == "" || p["price"] != 1500.5 || p["stock"] != float64(20) {
		t.Fatalf("unexpected product: %v", p)
	}

	// 422 con errores por campo
	st, body = doReq(t, ts.URL, "POST", "/api/v1/medicines", map[string]any{"name": "Paracetamol", "dose": "0"})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", st)
	}
	var verr struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	_ = json.Unmarshal(body, &verr)
	if verr.Message != "validation error" ||
		verr.Errors["description"] != "Por favor, ingrese una descripcion" ||
		verr.Errors["dose"] != "La dosis debe ser entre 1 y 10" {
		t.Fatalf("unexpected validation body: %s", body)
	}

	// PATCH parcial
	st, body = doReq(t, ts.URL, "PATCH", "/api/v1/products/"+id, map[string]any{"stock": 0, "price": ""})
	if st != http.StatusOK {
		t.Fatalf("expected 200 on patch, got %d body=%s", st, body)
	}
	_ = json.Unmarshal(body, &p)
	if p["stock"] != float64(0) || p["price"] != 1500.5 {
		t.Fatalf("unexpected patched product: %v", p)
	}

	// Bad json
	if st, _ := doRaw(t, ts.URL, "POST", "/api/v1/pets", "{"); st != http.StatusBadRequest {
		t.Fatalf("expected 400 on invalid json, got %d", st)
	}

	// Delete + 404
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/v1/products/"+id, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/api/v1/products/"+id, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/clients/{id}") {
		t.Fatalf("unexpected swagger doc: %d", st)
	}
}

// -------------------------
// helpers
// -------------------------

func firstID(t *testing.T, baseURL, path string) string {
	t.Helper()
	var list []map[string]any
	_, raw := doReq(t, baseURL, "GET", path, nil)
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		t.Fatalf("list %s: %v %s", path, err, raw)
	}
	id, _ := list[0]["id"].(string)
	return id
}

func postForm(t *testing.T, baseURL, path string, form url.Values) (int, []byte) {
	t.Helper()
	res, err := noRedirect.PostForm(baseURL+path, form)
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func doRaw(t *testing.T, baseURL, method, path, raw string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, baseURL+path, strings.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
