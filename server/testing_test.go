package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Daskott/raksha/server/auth"
	"github.com/Daskott/raksha/server/database"
	"github.com/Daskott/raksha/server/models"
	"github.com/Daskott/raksha/server/notify"
	"github.com/Daskott/raksha/shared"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	store   *models.Store
	sender  *notify.SenderStub
	handler http.Handler
}

func newTestServer(t *testing.T, configure ...func(*Options)) *testServer {
	t.Helper()

	tokens, err := auth.NewTokenIssuer(shared.AuthConfig{SecretKey: "test-secret", AccessTokenExpireMinutes: 30})
	require.Nil(t, err)

	store := models.NewStore(database.InitializeTestDb(t))
	sender := &notify.SenderStub{}

	opts := Options{Store: store, Tokens: tokens, Sender: sender, AuthRateLimit: "1000-M"}
	for _, fn := range configure {
		fn(&opts)
	}

	srv, err := NewServer(opts)
	require.Nil(t, err)

	return &testServer{store: store, sender: sender, handler: srv.Handler()}
}

func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates a user & returns their access token
func (ts *testServer) register(t *testing.T, email, phone string) string {
	t.Helper()

	rr := ts.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":        email,
		"phone_number": phone,
		"full_name":    "Asha Rao",
		"password":     "s3cret!",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	token := TokenResponse{}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &token))
	return token.AccessToken
}

func (ts *testServer) addContact(t *testing.T, token, name, phone string) models.Contact {
	t.Helper()

	rr := ts.do(http.MethodPost, "/api/contacts", map[string]interface{}{
		"name":         name,
		"phone_number": phone,
	}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	contact := models.Contact{}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &contact))
	return contact
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Nil(t, json.NewDecoder(strings.NewReader(rr.Body.String())).Decode(v), rr.Body.String())
}

func phone(i int) string {
	return fmt.Sprintf("+1555000%04d", i)
}

func (ts *testServer) userID(t *testing.T, token string) string {
	t.Helper()

	user := models.User{}
	decode(t, ts.do(http.MethodGet, "/api/auth/me", nil, token), &user)
	require.NotEmpty(t, user.ID)
	return user.ID
}
