package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ryan-53/registration-and-payment-api/internal/config"
	"github.com/Ryan-53/registration-and-payment-api/internal/logging"
)

// newTestServer builds a server with a fresh, empty user store and no
// Redis, mirroring the default deployment.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{AppName: "test", Port: "0", RateLimit: 1000}
	srv, err := New(cfg, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, target string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode body %q: %v", string(raw), err)
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	return body.Error
}

func validRegistration() map[string]any {
	return map[string]any{
		"username":           "user123",
		"password":           "Pass1234",
		"email":              "user@example.com",
		"dob":                "2000-01-01",
		"credit_card_number": "1234567891234567",
	}
}

func TestRegisterValidRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, fiber.MethodPost, "/users", validRegistration())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Message string            `json:"message"`
		User    map[string]string `json:"user"`
	}
	decodeBody(t, resp, &body)
	if body.Message != "User successfully registered" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	for key, want := range map[string]string{
		"username":           "user123",
		"password":           "Pass1234",
		"email":              "user@example.com",
		"dob":                "2000-01-01",
		"credit_card_number": "1234567891234567",
	} {
		if body.User[key] != want {
			t.Fatalf("stored %s = %q, want %q", key, body.User[key], want)
		}
	}
}

func TestRegisterMissingFieldReportsFirstInOrder(t *testing.T) {
	srv := newTestServer(t)

	payload := validRegistration()
	delete(payload, "password")
	delete(payload, "dob")

	resp := doJSON(t, srv, fiber.MethodPost, "/users", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "password must be provided." {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestRegisterWithoutCardIsAccepted(t *testing.T) {
	srv := newTestServer(t)

	payload := validRegistration()
	delete(payload, "credit_card_number")

	resp := doJSON(t, srv, fiber.MethodPost, "/users", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, resp, &body)
	if _, present := body.User["credit_card_number"]; present {
		t.Fatal("absent card must not appear in the stored record")
	}
}

func TestRegisterBadCardNumber(t *testing.T) {
	srv := newTestServer(t)

	for _, card := range []string{"123456789123456", "123456789123456a"} {
		payload := validRegistration()
		payload["credit_card_number"] = card

		resp := doJSON(t, srv, fiber.MethodPost, "/users", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for card %q, got %d", card, resp.StatusCode)
		}
		if msg := errorMessage(t, resp); msg != "Number must contain 16 numerical digits." {
			t.Fatalf("unexpected error %q", msg)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, fiber.MethodPost, "/users", validRegistration())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first registration: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, srv, fiber.MethodPost, "/users", validRegistration())
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second registration: expected 409, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Username already taken." {
		t.Fatalf("unexpected error %q", msg)
	}

	// Exactly one record with the username remains.
	resp = doJSON(t, srv, fiber.MethodGet, "/users", nil)
	var stored []map[string]any
	decodeBody(t, resp, &stored)
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(stored))
	}
}

func TestRegisterUnderage(t *testing.T) {
	srv := newTestServer(t)

	payload := validRegistration()
	payload["dob"] = time.Now().AddDate(-18, 0, 1).Format("2006-01-02")

	resp := doJSON(t, srv, fiber.MethodPost, "/users", payload)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "User must be at least 18 years old" {
		t.Fatalf("unexpected error %q", msg)
	}
}

func registerThree(t *testing.T, srv *Server) {
	t.Helper()
	for _, u := range []map[string]any{
		{"username": "alice", "password": "Pass1234", "email": "alice@example.com", "dob": "2000-01-01", "credit_card_number": "1234567891234567"},
		{"username": "bob", "password": "Pass1234", "email": "bob@example.com", "dob": "2000-01-01", "credit_card_number": "7654321987654321"},
		{"username": "carol", "password": "Pass1234", "email": "carol@example.com", "dob": "2000-01-01"},
	} {
		resp := doJSON(t, srv, fiber.MethodPost, "/users", u)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed %v: expected 201, got %d", u["username"], resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestListUsersFilters(t *testing.T) {
	srv := newTestServer(t)
	registerThree(t, srv)

	resp := doJSON(t, srv, fiber.MethodGet, "/users?CreditCard=Yes", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var withCards []map[string]any
	decodeBody(t, resp, &withCards)
	if len(withCards) != 2 || withCards[0]["username"] != "alice" || withCards[1]["username"] != "bob" {
		t.Fatalf("unexpected card holders %v", withCards)
	}

	resp = doJSON(t, srv, fiber.MethodGet, "/users?CreditCard=No", nil)
	var withoutCards []map[string]any
	decodeBody(t, resp, &withoutCards)
	if len(withoutCards) != 1 || withoutCards[0]["username"] != "carol" {
		t.Fatalf("unexpected cardless users %v", withoutCards)
	}

	// No filter, and an unrecognized value, both return everyone in
	// insertion order.
	for _, target := range []string{"/users", "/users?CreditCard=Maybe"} {
		resp = doJSON(t, srv, fiber.MethodGet, target, nil)
		var all []map[string]any
		decodeBody(t, resp, &all)
		if len(all) != 3 || all[0]["username"] != "alice" || all[1]["username"] != "bob" || all[2]["username"] != "carol" {
			t.Fatalf("%s: unexpected listing %v", target, all)
		}
	}
}

func TestListUsersNoContent(t *testing.T) {
	srv := newTestServer(t)

	// Empty store: every filter yields 204 with an empty body.
	resp := doJSON(t, srv, fiber.MethodGet, "/users", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) != 0 {
		t.Fatalf("expected empty body, got %q", raw)
	}

	// A populated store can still produce zero matches for a filter.
	payload := validRegistration()
	delete(payload, "credit_card_number")
	resp = doJSON(t, srv, fiber.MethodPost, "/users", payload)
	resp.Body.Close()

	resp = doJSON(t, srv, fiber.MethodGet, "/users?CreditCard=Yes", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for zero matches, got %d", resp.StatusCode)
	}
}

func TestListUsersIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	registerThree(t, srv)

	for i := 0; i < 3; i++ {
		resp := doJSON(t, srv, fiber.MethodGet, "/users", nil)
		var all []map[string]any
		decodeBody(t, resp, &all)
		if len(all) != 3 {
			t.Fatalf("listing %d mutated the store: %d users", i, len(all))
		}
	}
}

func TestPaymentAgainstRegisteredCard(t *testing.T) {
	srv := newTestServer(t)
	registerThree(t, srv)

	resp := doJSON(t, srv, fiber.MethodPost, "/payments", map[string]any{
		"credit_card_number": "1234567891234567",
		"amount":             "123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	if body.Message != "Payment of 123 made." {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestPaymentAgainstUnregisteredCard(t *testing.T) {
	srv := newTestServer(t)
	registerThree(t, srv)

	resp := doJSON(t, srv, fiber.MethodPost, "/payments", map[string]any{
		"credit_card_number": "0000000000000000",
		"amount":             "123",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Credit card number not registered with any user." {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestPaymentMissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, fiber.MethodPost, "/payments", map[string]any{"amount": "123"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "credit_card_number must be provided." {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestPaymentBadAmount(t *testing.T) {
	srv := newTestServer(t)
	registerThree(t, srv)

	resp := doJSON(t, srv, fiber.MethodPost, "/payments", map[string]any{
		"credit_card_number": "1234567891234567",
		"amount":             "12.5",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Number must contain 3 numerical digits." {
		t.Fatalf("unexpected error %q", msg)
	}
}
