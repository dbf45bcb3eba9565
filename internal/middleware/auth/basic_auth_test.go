package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		username string
		password string
		setAuth  bool
		user     string
		pass     string
		wantCode int
	}{
		{name: "valid", username: "admin", password: "secret", setAuth: true, user: "admin", pass: "secret", wantCode: http.StatusNoContent},
		{name: "no header", username: "admin", password: "secret", wantCode: http.StatusUnauthorized},
		{name: "wrong password", username: "admin", password: "secret", setAuth: true, user: "admin", pass: "nope", wantCode: http.StatusUnauthorized},
		{name: "wrong user", username: "admin", password: "secret", setAuth: true, user: "root", pass: "secret", wantCode: http.StatusUnauthorized},
		{name: "unconfigured", setAuth: true, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/templates", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rr := httptest.NewRecorder()

			BasicAuth(tt.username, tt.password)(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="Template Administration"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestBasicAuth_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic not-base64!")
	rr := httptest.NewRecorder()

	BasicAuth("admin", "secret")(http.NotFoundHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
