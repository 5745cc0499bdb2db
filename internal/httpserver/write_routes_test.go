package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const requiredFieldsMsg = "Molimo popunite sva obavezna polja"

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func bodyText(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return strings.TrimSpace(string(b))
}

func countRows(t *testing.T, srv *httptest.Server, token, module string) int {
	t.Helper()
	resp := do(t, srv, http.MethodGet, "/v1/"+module, token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list %s: status %d", module, resp.StatusCode)
	}
	var rows []map[string]any
	decodeBody(t, resp, &rows)
	return len(rows)
}

func TestCreateValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@test.com", "AsasE0111-")
	tests := []struct {
		module string
		body   string
		msg    string
	}{
		{"ponude", `{"kupac":"Samo kupac"}`, requiredFieldsMsg},
		{"radni-nalozi", `{"opis":"bez broja"}`, requiredFieldsMsg},
		{"pilana", `{"paket_kod":"PKT-9"}`, requiredFieldsMsg},
		{"trupci", `{"qr_kod":"T-1","boja_plocice":"ljubičasta"}`, requiredFieldsMsg},
		{"otpremnice", `{"kupac":"Kupac","stavke":[]}`, "Molimo odaberite kupca i dodajte stavke"},
	}
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			before := countRows(t, srv, admin, tt.module)
			resp := do(t, srv, http.MethodPost, "/v1/"+tt.module, admin, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			if got := bodyText(t, resp); got != tt.msg {
				t.Fatalf("message = %q, want %q", got, tt.msg)
			}
			if after := countRows(t, srv, admin, tt.module); after != before {
				t.Fatalf("rejected form wrote a row: %d -> %d", before, after)
			}
		})
	}
}

func TestCreateAndUpdateOffer(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@test.com", "AsasE0111-")

	resp := do(t, srv, http.MethodPost, "/v1/ponude", admin,
		`{"broj_ponude":"PON-9","kupac":"Novi kupac","datum":"2024-03-01","stavke":[{"proizvod":"Grede","kolicina":2,"cijena":10.5}]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID     string   `json:"id"`
		Status string   `json:"status"`
		Total  *float64 `json:"ukupna_cijena"`
	}
	decodeBody(t, resp, &created)
	if created.ID == "" || created.Status != "na-čekanju" || created.Total == nil || *created.Total != 21 {
		t.Fatalf("unexpected created offer %+v", created)
	}

	resp = do(t, srv, http.MethodPut, "/v1/ponude/"+created.ID, admin,
		`{"broj_ponude":"PON-9","kupac":"Promijenjen","status":"odbijena"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/v1/ponude/"+created.ID, admin, "")
	var got struct {
		ID       string `json:"id"`
		Customer string `json:"kupac"`
		Status   string `json:"status"`
	}
	decodeBody(t, resp, &got)
	if got.ID != created.ID || got.Customer != "Promijenjen" || got.Status != "odbijena" {
		t.Fatalf("update not stored: %+v", got)
	}

	if resp := do(t, srv, http.MethodPut, "/v1/ponude/missing", admin, `{"broj_ponude":"X","kupac":"Y"}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", resp.StatusCode)
	}
	dup := `{"id":"` + created.ID + `","broj_ponude":"PON-10","kupac":"Drugi"}`
	if resp := do(t, srv, http.MethodPost, "/v1/ponude", admin, dup); resp.StatusCode != http.StatusConflict {
		t.Fatalf("create with existing id: expected 409, got %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/v1/ponude/"+created.ID, admin, "")
	decodeBody(t, resp, &got)
	if got.Customer != "Promijenjen" {
		t.Fatalf("duplicate create overwrote the offer: %+v", got)
	}
}

func TestWorkOrderFromOfferRoute(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@test.com", "AsasE0111-")
	resp := do(t, srv, http.MethodGet, "/v1/ponude?q=PON-2024-002", admin, "")
	var offers []struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &offers)
	if len(offers) != 1 {
		t.Fatalf("expected one matching offer, got %d", len(offers))
	}

	resp = do(t, srv, http.MethodPost, "/v1/ponude/"+offers[0].ID+"/radni-nalog", admin, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var wo struct {
		Number  string `json:"broj_naloga"`
		OfferID string `json:"ponuda_id"`
		Status  string `json:"status"`
	}
	decodeBody(t, resp, &wo)
	if wo.Number != "RN-PON-2024-002" || wo.OfferID != offers[0].ID || wo.Status != "na-čekanju" {
		t.Fatalf("unexpected work order %+v", wo)
	}
	resp = do(t, srv, http.MethodGet, "/v1/ponude/"+offers[0].ID, admin, "")
	var offer struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &offer)
	if offer.Status != "potvrđena" {
		t.Fatalf("offer status = %q", offer.Status)
	}
	if resp := do(t, srv, http.MethodPost, "/v1/ponude/missing/radni-nalog", admin, ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing offer: expected 404, got %d", resp.StatusCode)
	}
}

func TestLogIntakeKeepsHeader(t *testing.T) {
	srv := newTestServer(t)
	user := login(t, srv, "korisnik@test.com", "korisnik123")

	type intakeResp struct {
		Log struct {
			Volume   float64 `json:"m3"`
			Forestry string  `json:"sumarija"`
			Item     int     `json:"broj_stavke_otpremnice"`
			Status   string  `json:"status"`
		} `json:"trupac"`
		Header struct {
			Forestry string `json:"sumarija"`
			NextItem int    `json:"broj_stavke_otpremnice"`
		} `json:"zaglavlje"`
	}

	resp := do(t, srv, http.MethodPost, "/v1/trupci/prijem", user,
		`{"zaglavlje":{"sumarija":"Šumarija Jajce","prevoznik":"Trans"},"qr_kod":"T-100","broj_plocice":"100","boja_plocice":"plava","klasa_trupca":"II","duzina_trupca":300,"precnik_trupca":25}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first log: expected 201, got %d", resp.StatusCode)
	}
	var first intakeResp
	decodeBody(t, resp, &first)
	if first.Log.Volume != 0.147 || first.Log.Item != 1 || first.Log.Status != "na-stanju" {
		t.Fatalf("unexpected first log %+v", first.Log)
	}
	if first.Header.Forestry != "Šumarija Jajce" || first.Header.NextItem != 2 {
		t.Fatalf("unexpected header %+v", first.Header)
	}

	resp = do(t, srv, http.MethodPost, "/v1/trupci/prijem", user,
		`{"qr_kod":"T-101","broj_plocice":"101","boja_plocice":"crvena","klasa_trupca":"I","duzina_trupca":400,"precnik_trupca":30}`)
	var second intakeResp
	decodeBody(t, resp, &second)
	if second.Log.Forestry != "Šumarija Jajce" || second.Log.Item != 2 || second.Header.NextItem != 3 {
		t.Fatalf("header did not stick: %+v", second)
	}

	resp = do(t, srv, http.MethodPost, "/v1/trupci/prijem", user, `{"qr_kod":"T-102"}`)
	if resp.StatusCode != http.StatusBadRequest || bodyText(t, resp) != requiredFieldsMsg {
		t.Fatalf("invalid log: got %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/v1/trupci/prijem/zaglavlje", user, "")
	var h struct {
		NextItem int `json:"broj_stavke_otpremnice"`
	}
	decodeBody(t, resp, &h)
	if h.NextItem != 3 {
		t.Fatalf("failed save moved the item number to %d", h.NextItem)
	}

	resp = do(t, srv, http.MethodDelete, "/v1/trupci/prijem/zaglavlje", user, "")
	var reset struct {
		Forestry string `json:"sumarija"`
		NextItem int    `json:"broj_stavke_otpremnice"`
	}
	decodeBody(t, resp, &reset)
	if reset.Forestry != "" || reset.NextItem != 1 {
		t.Fatalf("unexpected reset header %+v", reset)
	}
}

func TestSawmillCutAndFinish(t *testing.T) {
	srv := newTestServer(t)
	user := login(t, srv, "korisnik@test.com", "korisnik123")

	resp := do(t, srv, http.MethodPost, "/v1/pilana/prorez", user, `{"paket_kod":"PKT-9","stavke":[]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty cut: expected 400, got %d", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/v1/pilana/prorez", user,
		`{"paket_kod":"PKT-9","datum":"2024-02-01","stavke":[{"proizvod":"Fosna 2x10x300","kolicina":10}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cut: expected 200, got %d", resp.StatusCode)
	}
	var pkg struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Operator string `json:"korisnik"`
		Items    []struct {
			WorkOrder string `json:"radni_nalog"`
		} `json:"stavke"`
	}
	decodeBody(t, resp, &pkg)
	if pkg.Status != "u-obradi" || pkg.Operator != "korisnik" || len(pkg.Items) != 1 || pkg.Items[0].WorkOrder != "RN-2024-003" {
		t.Fatalf("unexpected package %+v", pkg)
	}

	resp = do(t, srv, http.MethodPost, "/v1/pilana/"+pkg.ID+"/zavrsi", user, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("finish: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &pkg)
	if pkg.Status != "završen" {
		t.Fatalf("finished status = %q", pkg.Status)
	}
}

func TestAdminUserLifecycle(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@test.com", "AsasE0111-")

	resp := do(t, srv, http.MethodGet, "/v1/admin/permissions", admin, "")
	var keys []string
	decodeBody(t, resp, &keys)
	if len(keys) != 7 || keys[0] != "all" {
		t.Fatalf("unexpected permission keys %v", keys)
	}

	body := `{"email":"Pilanar@Test.com","password":"tajna123","permissions":["pilana"]}`
	resp = do(t, srv, http.MethodPost, "/v1/admin/users", admin, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create user: got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	if resp := do(t, srv, http.MethodPost, "/v1/admin/users", admin, body); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", resp.StatusCode)
	}
	bad := `{"email":"x@test.com","password":"p","permissions":["skladiste"]}`
	if resp := do(t, srv, http.MethodPost, "/v1/admin/users", admin, bad); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown permission: expected 400, got %d", resp.StatusCode)
	}

	worker := login(t, srv, "pilanar@test.com", "tajna123")
	if resp := do(t, srv, http.MethodGet, "/v1/pilana", worker, ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("granted module: got %d", resp.StatusCode)
	}
	if resp := do(t, srv, http.MethodGet, "/v1/ponude", worker, ""); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("ungranted module: got %d", resp.StatusCode)
	}

	path := "/v1/admin/users/" + created.ID
	if resp := do(t, srv, http.MethodPatch, path, admin, `{"permissions":["ponude"]}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("update permissions: got %d", resp.StatusCode)
	}
	if resp := do(t, srv, http.MethodGet, "/v1/ponude", worker, ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("permission edit should apply to the live session, got %d", resp.StatusCode)
	}
	if resp := do(t, srv, http.MethodPatch, path, admin, `{"is_active":false}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("deactivate: got %d", resp.StatusCode)
	}
	if resp := do(t, srv, http.MethodGet, "/v1/ponude", worker, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("deactivated user: expected 401, got %d", resp.StatusCode)
	}

	if resp := do(t, srv, http.MethodDelete, path, admin, ""); resp.StatusCode != http.StatusPreconditionRequired {
		t.Fatalf("unconfirmed delete: expected 428, got %d", resp.StatusCode)
	}
	if resp := do(t, srv, http.MethodDelete, path+"?confirm=true", admin, ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("confirmed delete: got %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/v1/admin/users", admin, "")
	var users []map[string]any
	decodeBody(t, resp, &users)
	if len(users) != 2 {
		t.Fatalf("expected the two fixture users after delete, got %d", len(users))
	}
}

func TestPrintSettingsAndDispatch(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@test.com", "AsasE0111-")

	type result struct {
		Success bool   `json:"success"`
		Method  string `json:"method"`
		JobID   string `json:"job_id"`
	}
	resp := do(t, srv, http.MethodPost, "/v1/ponude/print", admin, "")
	var res result
	decodeBody(t, resp, &res)
	if !res.Success || res.Method != "browser" || !strings.HasPrefix(res.JobID, "browser_") {
		t.Fatalf("unconfigured printer should fall back to the browser: %+v", res)
	}

	badProto := `{"networkPrinter":{"enabled":true,"ip":"10.0.0.5","protocol":"ftp"}}`
	if resp := do(t, srv, http.MethodPut, "/v1/admin/settings/print", admin, badProto); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad protocol: expected 400, got %d", resp.StatusCode)
	}
	good := `{"networkPrinter":{"enabled":true,"ip":"10.0.0.5","port":"631","protocol":"ipp","name":"Ured"},"printOptions":{"copies":0}}`
	if resp := do(t, srv, http.MethodPut, "/v1/admin/settings/print", admin, good); resp.StatusCode != http.StatusOK {
		t.Fatalf("save print settings: got %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/v1/admin/settings/print", admin, "")
	var ps struct {
		NetworkPrinter struct {
			IP string `json:"ip"`
		} `json:"networkPrinter"`
		PrintOptions struct {
			Copies int `json:"copies"`
		} `json:"printOptions"`
	}
	decodeBody(t, resp, &ps)
	if ps.NetworkPrinter.IP != "10.0.0.5" || ps.PrintOptions.Copies != 1 {
		t.Fatalf("unexpected stored settings %+v", ps)
	}

	resp = do(t, srv, http.MethodPost, "/v1/ponude/print", admin, "")
	decodeBody(t, resp, &res)
	if !res.Success || res.Method != "network" || !strings.HasPrefix(res.JobID, "network_") {
		t.Fatalf("configured printer should receive the job: %+v", res)
	}

	if resp := do(t, srv, http.MethodPut, "/v1/admin/settings/export", admin, `{"header":"Pilana d.o.o.","footer":"Hvala"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("save export settings: got %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/v1/ponude/print", admin, "")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("print page content type %q", ct)
	}
	if page := bodyText(t, resp); !strings.Contains(page, "Hvala") {
		t.Fatalf("print page misses the configured footer")
	}
}

func TestAIPredictionsRoute(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@test.com", "AsasE0111-")
	resp := do(t, srv, http.MethodGet, "/v1/admin/ai/predictions", admin, "")
	var preds []struct {
		Module string `json:"module"`
	}
	decodeBody(t, resp, &preds)
	if len(preds) != 3 || preds[0].Module != "Ponude" {
		t.Fatalf("unexpected predictions %+v", preds)
	}
	user := login(t, srv, "korisnik@test.com", "korisnik123")
	if resp := do(t, srv, http.MethodGet, "/v1/admin/ai/predictions", user, ""); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", resp.StatusCode)
	}
}
