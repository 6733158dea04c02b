package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kharcha/internal/domain/user"
	"kharcha/internal/shared/auth"
)

func testJWT() *auth.JWT {
	return auth.NewJWT("test-secret", time.Hour)
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockUserRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"email":    "new@example.com",
				"name":     "New User",
				"password": "long-enough-password",
			},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
						return &user.User{ID: 1, Email: params.Email, Name: params.Name, PasswordHash: params.PasswordHash}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]interface{}{
				"email":    "taken@example.com",
				"name":     "New User",
				"password": "long-enough-password",
			},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
						return nil, user.ErrDuplicateEmail
					},
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Short Password",
			body: map[string]interface{}{
				"email":    "new@example.com",
				"name":     "New User",
				"password": "short",
			},
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Email",
			body: map[string]interface{}{
				"email":    "not-an-email",
				"name":     "New User",
				"password": "long-enough-password",
			},
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockRepo(), testJWT())

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			handler.HandleRegister(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp AuthResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Token == "" {
					t.Error("expected a token in the response")
				}
				cookies := rr.Result().Cookies()
				var found bool
				for _, c := range cookies {
					if c.Name == "access_token" && c.Value != "" {
						found = true
					}
				}
				if !found {
					t.Error("expected access_token cookie to be set")
				}
			}
		})
	}
}

func TestHandleLogin(t *testing.T) {
	hash, _ := auth.HashPassword("correct-password")
	existing := &user.User{ID: 7, Email: "user@example.com", Name: "User", PasswordHash: hash}

	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockUserRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"email":    "user@example.com",
				"password": "correct-password",
			},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
						return existing, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			body: map[string]interface{}{
				"email":    "user@example.com",
				"password": "wrong-password",
			},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
						return existing, nil
					},
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown Email",
			body: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "correct-password",
			},
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockRepo(), testJWT())

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			handler.HandleLogin(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleLogin_SameErrorForBothFailures(t *testing.T) {
	hash, _ := auth.HashPassword("correct-password")

	repo := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			if email == "user@example.com" {
				return &user.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	handler := NewAuthHandler(repo, testJWT())

	bodies := []string{
		`{"email":"user@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"correct-password"}`,
	}

	var responses []string
	for _, b := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(b))
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, req)
		responses = append(responses, strings.TrimSpace(rr.Body.String()))
	}

	if responses[0] != responses[1] {
		t.Errorf("wrong-password and unknown-email responses differ: %q vs %q", responses[0], responses[1])
	}
}

func TestHandleLogout(t *testing.T) {
	handler := NewAuthHandler(&MockUserRepo{}, testJWT())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()

	handler.HandleLogout(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	cookies := rr.Result().Cookies()
	var cleared bool
	for _, c := range cookies {
		if c.Name == "access_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected access_token cookie to be cleared")
	}
}
