package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/adpilot/admanager/internal/config/configs"
	"github.com/adpilot/admanager/internal/domain/user"
	"github.com/adpilot/admanager/internal/security"
)

type fakeUserStore struct {
	byEmail map[string]user.User
	byID    map[string]user.User

	createErr     error
	updateErr     error
	getByEmailErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: map[string]user.User{},
		byID:    map[string]user.User{},
	}
}

func (f *fakeUserStore) add(u user.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserStore) Create(_ context.Context, u user.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	f.add(u)
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	if f.getByEmailErr != nil {
		return user.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, u user.User) (user.User, error) {
	if f.updateErr != nil {
		return user.User{}, f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	f.add(u)
	return u, nil
}

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) GenerateToken(userID, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

func newAuthHandler(store *fakeUserStore) *AuthHandler {
	return NewAuthHandler(store, fakeIssuer{}, configs.Upload{Dir: "uploads", URLPrefix: "/uploads"})
}

func TestSignUp(t *testing.T) {
	store := newFakeUserStore()
	h := newAuthHandler(store)
	r := newTestRouter("", http.MethodPost, "/api/auth/signup", h.SignUp)

	body := `{"firstName":"Jane","lastName":"Doe","email":"Jane@Example.com","password":"secret1"}`
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	requireStatus(t, w, http.StatusCreated)

	var resp struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.User.Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Language != "en" {
		t.Errorf("language = %q, want en", resp.User.Language)
	}
	if strings.Contains(w.Body.String(), "passwordHash") {
		t.Error("password hash leaked into response")
	}

	stored, err := store.GetByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if err := security.CheckPassword(stored.PasswordHash, "secret1"); err != nil {
		t.Error("stored hash does not match password")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	store.add(user.User{ID: "u1", Email: "jane@example.com"})
	h := newAuthHandler(store)
	r := newTestRouter("", http.MethodPost, "/api/auth/signup", h.SignUp)

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"secret1"}`
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	requireErrorCode(t, w, http.StatusBadRequest, "invalid_request")
}

func TestSignUpInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"email":"jane@example.com"}`},
		{"bad email", `{"firstName":"J","lastName":"D","email":"nope","password":"secret1"}`},
		{"short password", `{"firstName":"J","lastName":"D","email":"jane@example.com","password":"abc"}`},
		{"not json", `{{{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newAuthHandler(newFakeUserStore())
			r := newTestRouter("", http.MethodPost, "/api/auth/signup", h.SignUp)

			w := doJSON(t, r, http.MethodPost, "/api/auth/signup", tc.body)
			requireErrorCode(t, w, http.StatusBadRequest, "invalid_request")
		})
	}
}

func TestSignIn(t *testing.T) {
	hash, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}

	store := newFakeUserStore()
	store.add(user.User{ID: "u1", Email: "jane@example.com", PasswordHash: hash})
	h := newAuthHandler(store)
	r := newTestRouter("", http.MethodPost, "/api/auth/signin", h.SignIn)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid credentials",
			body:       `{"email":"jane@example.com","password":"secret1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "uppercase email still matches",
			body:       `{"email":"JANE@example.com","password":"secret1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"email":"jane@example.com","password":"wrong1"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			body:       `{"email":"ghost@example.com","password":"secret1"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth/signin", tc.body)
			requireStatus(t, w, tc.wantStatus)

			if tc.wantStatus == http.StatusUnauthorized {
				body := decodeErrorBody(t, w)
				if body.Error.Code != "invalid_credentials" {
					t.Errorf("code = %q, want invalid_credentials", body.Error.Code)
				}
			}
		})
	}
}

func TestMe(t *testing.T) {
	store := newFakeUserStore()
	store.add(user.User{ID: "u1", Email: "jane@example.com", FirstName: "Jane"})
	h := newAuthHandler(store)

	t.Run("known user", func(t *testing.T) {
		r := newTestRouter("u1", http.MethodGet, "/api/auth/me", h.Me)
		w := doJSON(t, r, http.MethodGet, "/api/auth/me", "")
		requireStatus(t, w, http.StatusOK)

		var resp struct {
			User user.User `json:"user"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.User.FirstName != "Jane" {
			t.Errorf("firstName = %q", resp.User.FirstName)
		}
	})

	t.Run("vanished user", func(t *testing.T) {
		r := newTestRouter("ghost", http.MethodGet, "/api/auth/me", h.Me)
		w := doJSON(t, r, http.MethodGet, "/api/auth/me", "")
		requireErrorCode(t, w, http.StatusNotFound, "not_found")
	})

	t.Run("no identity", func(t *testing.T) {
		r := newTestRouter("", http.MethodGet, "/api/auth/me", h.Me)
		w := doJSON(t, r, http.MethodGet, "/api/auth/me", "")
		requireStatus(t, w, http.StatusUnauthorized)
	})
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeUserStore()
	store.add(user.User{ID: "u1", Email: "jane@example.com", FirstName: "Jane", Company: "Acme"})
	h := newAuthHandler(store)
	r := newTestRouter("u1", http.MethodPut, "/api/auth/update-profile", h.UpdateProfile)

	w := doJSON(t, r, http.MethodPut, "/api/auth/update-profile", `{"firstName":"Janet","bio":"ads person"}`)
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		User user.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.User.FirstName != "Janet" {
		t.Errorf("firstName = %q, want Janet", resp.User.FirstName)
	}
	if resp.User.Bio != "ads person" {
		t.Errorf("bio = %q", resp.User.Bio)
	}
	if resp.User.Company != "Acme" {
		t.Errorf("company changed: %q", resp.User.Company)
	}
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	store := newFakeUserStore()
	store.add(user.User{ID: "u1", Email: "jane@example.com"})
	store.updateErr = user.ErrEmailTaken
	h := newAuthHandler(store)
	r := newTestRouter("u1", http.MethodPut, "/api/auth/update-profile", h.UpdateProfile)

	w := doJSON(t, r, http.MethodPut, "/api/auth/update-profile", `{"email":"other@example.com"}`)
	requireErrorCode(t, w, http.StatusBadRequest, "invalid_request")
}

// A database outage during sign-in must surface as a 500, not as bad
// credentials; the client force-signs-out on any 401.
func TestSignInStoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.getByEmailErr = errors.New("db connection refused")
	h := newAuthHandler(store)
	r := newTestRouter("", http.MethodPost, "/api/auth/signin", h.SignIn)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signin", `{"email":"jane@example.com","password":"secret1"}`)
	requireErrorCode(t, w, http.StatusInternalServerError, "internal_error")
}

func TestSignUpStoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.createErr = errors.New("db down")
	h := newAuthHandler(store)
	r := newTestRouter("", http.MethodPost, "/api/auth/signup", h.SignUp)

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"secret1"}`
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", body)
	requireErrorCode(t, w, http.StatusInternalServerError, "internal_error")
}
