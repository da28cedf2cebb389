package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"oneasy-portal/internal/testutil/testserver"
	"oneasy-portal/internal/viewmode"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func do(t *testing.T, s *testserver.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestHealthz(t *testing.T) {
	s := testserver.New(t)
	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPanicBecomesEnvelope(t *testing.T) {
	s := testserver.New(t)
	s.App.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	status, env := do(t, s, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)

	status, _ = do(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRegisterLoginMe(t *testing.T) {
	s := testserver.New(t)

	status, env := do(t, s, http.MethodPost, "/register", "", map[string]string{
		"name": "Asha", "email": "asha@shop.in", "phone": "9876543210", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "password")

	status, env = do(t, s, http.MethodPost, "/login", "", map[string]string{"identifier": "9876543210", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)

	status, env = do(t, s, http.MethodPost, "/login", "", map[string]string{"identifier": "asha@shop.in", "password": "secret1"})
	require.Equal(t, http.StatusOK, status)
	var login struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "client", login.User.Role)

	status, _ = do(t, s, http.MethodGet, "/me", login.Token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = do(t, s, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestValidationErrorsCarryFields(t *testing.T) {
	s := testserver.New(t)
	status, env := do(t, s, http.MethodPost, "/register", "", map[string]string{"phone": "123", "email": "x", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Data), `"field":"phone"`)
}

func TestAdminRoutesRequireStaff(t *testing.T) {
	s := testserver.New(t)
	_, clientTok := s.Seed(t, viewmode.RoleClient, "9000000001", "c@x.com", "secret1")
	_, adminTok := s.Seed(t, viewmode.RoleAdmin, "9000000002", "a@x.com", "secret1")

	status, _ := do(t, s, http.MethodGet, "/admin/clients", clientTok, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := do(t, s, http.MethodGet, "/admin/clients", adminTok, nil)
	require.Equal(t, http.StatusOK, status)
	var clients []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &clients))
	assert.Len(t, clients, 1)

	status, _ = do(t, s, http.MethodGet, "/superadmin/users", adminTok, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = do(t, s, http.MethodPost, "/admin/users", adminTok, map[string]string{
		"name": "New", "phone": "9123456789", "email": "a@b.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusCreated, status, env.Message)
	status, _ = do(t, s, http.MethodPost, "/admin/users", adminTok, map[string]string{
		"name": "Dup", "phone": "9123456789", "email": "other@b.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestRegistrationLifecycle(t *testing.T) {
	s := testserver.New(t)
	_, clientTok := s.Seed(t, viewmode.RoleClient, "9000000001", "c@x.com", "secret1")
	_, adminTok := s.Seed(t, viewmode.RoleAdmin, "9000000002", "a@x.com", "secret1")

	status, env := do(t, s, http.MethodPost, "/gst/submit", clientTok, map[string]any{
		"reason": "autosave",
		"steps":  map[string]any{"step1": map[string]any{"businessName": "Acme"}},
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	var reg struct {
		TicketID string         `json:"ticketId"`
		Status   string         `json:"status"`
		Fields   map[string]any `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.True(t, strings.HasPrefix(reg.TicketID, "GST_"))
	assert.Equal(t, "draft", reg.Status)

	status, _ = do(t, s, http.MethodPost, "/gst/submit", clientTok, map[string]any{
		"ticketId": reg.TicketID,
		"reason":   "next-step-1",
		"step":     1,
		"steps":    map[string]any{"step2": map[string]any{"city": "Pune"}},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, s.Registrations.Count())

	status, env = do(t, s, http.MethodGet, "/gst/"+reg.TicketID, clientTok, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.Equal(t, "Pune", reg.Fields["city"])
	assert.Equal(t, "Acme", reg.Fields["businessName"])

	status, _ = do(t, s, http.MethodGet, "/private-limited/"+reg.TicketID, clientTok, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = do(t, s, http.MethodPut, "/gst/fill-requests/"+reg.TicketID+"/client", clientTok, map[string]bool{"active": true})
	assert.Equal(t, http.StatusForbidden, status, env.Message)
	status, _ = do(t, s, http.MethodPut, "/gst/fill-requests/"+reg.TicketID+"/client", adminTok, map[string]bool{"active": true})
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, s, http.MethodGet, "/gst/fill-requests/"+reg.TicketID, clientTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ticketId":"`+reg.TicketID+`","teamFill":false,"clientFillRequested":true}`, string(env.Data))

	status, _ = do(t, s, http.MethodPost, "/gst/submit", adminTok, map[string]any{"ticketId": reg.TicketID})
	assert.Equal(t, http.StatusLocked, status)

	status, env = do(t, s, http.MethodGet, "/gst", adminTok, nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	status, _ = do(t, s, http.MethodPost, "/gst/submit", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPackagesAndPayments(t *testing.T) {
	s := testserver.New(t)
	_, tok := s.Seed(t, viewmode.RoleClient, "9000000001", "c@x.com", "secret1")

	status, env := do(t, s, http.MethodGet, "/packages?kind=gst", "", nil)
	require.Equal(t, http.StatusOK, status)
	var pkgs []struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pkgs))
	require.NotEmpty(t, pkgs)
	for _, p := range pkgs {
		assert.Equal(t, "gst", p.Kind)
	}

	status, _ = do(t, s, http.MethodGet, "/packages?kind=llp", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, s, http.MethodPost, "/payments", tok, map[string]string{"packageId": pkgs[0].ID})
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Contains(t, string(env.Data), `"status":"paid"`)

	status, _ = do(t, s, http.MethodPost, "/payments", tok, map[string]string{"packageId": "missing"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNoticeCRUD(t *testing.T) {
	s := testserver.New(t)
	client, clientTok := s.Seed(t, viewmode.RoleClient, "9000000001", "c@x.com", "secret1")
	_, adminTok := s.Seed(t, viewmode.RoleAdmin, "9000000002", "a@x.com", "secret1")

	status, env := do(t, s, http.MethodPost, "/admin/notices", adminTok, map[string]any{
		"title": "Docs pending", "description": "Upload PAN", "clientId": client.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var n struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &n))

	status, env = do(t, s, http.MethodGet, "/notices", clientTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "Docs pending")

	status, _ = do(t, s, http.MethodPut, "/admin/notices/"+n.ID, adminTok, map[string]any{"title": "Docs pending", "description": "Upload PAN now"})
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, s, http.MethodDelete, "/admin/notices/"+n.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, s, http.MethodDelete, "/admin/notices/"+n.ID, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func upload(t *testing.T, s *testserver.Server, token, name, content string) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, _ = fw.Write([]byte(content))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var up struct {
		FileURL string `json:"fileUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &up))
	return up.FileURL
}

func signedLink(t *testing.T, s *testserver.Server, token, ref string) (int, string) {
	t.Helper()
	status, env := do(t, s, http.MethodGet, "/gst/signed-url?fileUrl="+url.QueryEscape(ref), token, nil)
	if status != http.StatusOK {
		return status, ""
	}
	var signed struct {
		SignedURL string `json:"signedUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signed))
	return status, signed.SignedURL
}

func TestDocumentUploadAndSignedView(t *testing.T) {
	s := testserver.New(t)
	_, tok := s.Seed(t, viewmode.RoleClient, "9000000001", "c@x.com", "secret1")

	ref := upload(t, s, tok, "pan.pdf", "%PDF-1.4")
	assert.True(t, strings.HasPrefix(ref, "doc://"))

	status, link := signedLink(t, s, tok, ref)
	require.Equal(t, http.StatusOK, status)
	u, err := url.Parse(link)
	require.NoError(t, err)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, u.RequestURI(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.4", string(body))

	status, _ = do(t, s, http.MethodGet, "/documents/view?token=forged", "", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSignedURLChecksAccess(t *testing.T) {
	s := testserver.New(t)
	client, clientTok := s.Seed(t, viewmode.RoleClient, "9000000001", "c@x.com", "secret1")
	_, otherTok := s.Seed(t, viewmode.RoleClient, "9000000003", "o@x.com", "secret1")
	_, adminTok := s.Seed(t, viewmode.RoleAdmin, "9000000002", "a@x.com", "secret1")

	status, _ := signedLink(t, s, clientTok, "https://evil.example/phish")
	assert.Equal(t, http.StatusBadRequest, status)

	mine := upload(t, s, clientTok, "pan.pdf", "%PDF")
	status, _ = signedLink(t, s, otherTok, mine)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = signedLink(t, s, adminTok, mine)
	assert.Equal(t, http.StatusOK, status)

	// staff upload for a client's draft; the client may then read it
	staffDoc := upload(t, s, adminTok, "bill.pdf", "%PDF")
	status, _ = signedLink(t, s, clientTok, staffDoc)
	assert.Equal(t, http.StatusForbidden, status)
	status, env := do(t, s, http.MethodPost, "/gst/submit", adminTok, map[string]any{
		"clientId": client.ID.Hex(),
		"steps":    map[string]any{"step4": map[string]any{"addressProofUrl": staffDoc}},
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	status, _ = signedLink(t, s, clientTok, staffDoc)
	assert.Equal(t, http.StatusOK, status)
	status, _ = signedLink(t, s, otherTok, staffDoc)
	assert.Equal(t, http.StatusForbidden, status)
}
