package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegister_RejectsWeakPassword(t *testing.T) {
	db := testDB(t)
	r, _ := testEngine(t, db)

	cases := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, pwd := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
			"username":         "bob_01",
			"password":         pwd,
			"confirm_password": pwd,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("register with password %q status = %d, want 400", pwd, w.Code)
		}
	}
}

func TestRegister_UsernameTakenCaseInsensitive(t *testing.T) {
	db := testDB(t)
	r, _ := testEngine(t, db)
	registerAndLogin(t, r) // registers alice_01

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         "ALICE_01",
		"password":         "Password1",
		"confirm_password": "Password1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", w.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db := testDB(t)
	r, _ := testEngine(t, db)
	registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice_01",
		"password": "WrongPass1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("login status = %d, want 401", w.Code)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	db := testDB(t)
	r, protected := testEngine(t, db)
	protected.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	token := registerAndLogin(t, r)

	if w := doJSON(t, r, http.MethodGet, "/api/ping", token, nil); w.Code != http.StatusOK {
		t.Fatalf("ping before logout status = %d, want 200", w.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", w.Code)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/ping", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("ping after logout status = %d, want 401", w.Code)
	}
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	db := testDB(t)
	r, protected := testEngine(t, db)
	protected.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := doJSON(t, r, http.MethodGet, "/api/ping", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated ping status = %d, want 401", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/ping", "garbage-token", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token ping status = %d, want 401", w.Code)
	}
}
