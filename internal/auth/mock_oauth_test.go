package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"JobPortal-backend/internal/model"
)

// mockOAuth2Server stands in for Google's token and userinfo endpoints.
type mockOAuth2Server struct {
	*httptest.Server
	Config           *oauth2.Config
	MockInfoEndpoint string

	mu        sync.Mutex
	users     map[string]model.GoogleUserInfo // by auth code
	tokens    map[string]model.GoogleUserInfo // by access token
	exchanged map[string]bool                 // by GID
}

func newMockOAuth2Server(users ...model.GoogleUserInfo) *mockOAuth2Server {
	m := &mockOAuth2Server{
		users:     map[string]model.GoogleUserInfo{},
		tokens:    map[string]model.GoogleUserInfo{},
		exchanged: map[string]bool{},
	}
	for _, u := range users {
		m.users["code-"+u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", m.handleToken)
	mux.HandleFunc("/userinfo", m.handleUserInfo)
	m.Server = httptest.NewServer(mux)

	m.Config = &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.URL + "/auth",
			TokenURL:  m.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: "http://localhost/callback",
	}
	m.MockInfoEndpoint = m.URL + "/userinfo"
	return m
}

func (m *mockOAuth2Server) authCode(gid string) string {
	return "code-" + gid
}

func (m *mockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	m.mu.Lock()
	u, ok := m.users[r.PostForm.Get("code")]
	if ok {
		m.tokens["access-"+u.GID] = u
		m.exchanged[u.GID] = true
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": "access-" + u.GID,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (m *mockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	m.mu.Lock()
	u, ok := m.tokens[token]
	m.mu.Unlock()
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

func (m *mockOAuth2Server) isExchanged(gid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanged[gid]
}
