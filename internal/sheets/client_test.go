// ABOUTME: Tests for the sheets append client
// ABOUTME: Verifies URL shape, payload, and failure surfacing
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harper/voicememo/internal/verr"
)

func TestAppendRows(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	var gotBody struct {
		Values [][]string `json:"values"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":2}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Token: "tok", SheetID: "sheet123"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	rows := [][]string{
		{"Buy milk", "15 minutes", "Personal", "1700000000"},
		{"Call Bob", "20 minutes", "Work", "1700000000"},
	}
	if err := client.AppendRows(context.Background(), rows); err != nil {
		t.Fatalf("AppendRows() error = %v", err)
	}

	if gotPath != "/v4/spreadsheets/sheet123/values/A1:append" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotQuery, "valueInputOption=RAW") {
		t.Errorf("query = %q, want valueInputOption=RAW", gotQuery)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("auth = %q, want Bearer tok", gotAuth)
	}
	if len(gotBody.Values) != 2 || gotBody.Values[0][0] != "Buy milk" {
		t.Errorf("body values = %v", gotBody.Values)
	}
}

func TestAppendRows_EmptyIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty rows")
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, SheetID: "s"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if err := client.AppendRows(context.Background(), nil); err != nil {
		t.Errorf("AppendRows(nil) error = %v", err)
	}
}

func TestAppendRows_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, SheetID: "s"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	err = client.AppendRows(context.Background(), [][]string{{"x"}})
	if !errors.Is(err, verr.ErrNetwork) {
		t.Errorf("AppendRows() error = %v, want ErrNetwork", err)
	}
}

func TestNewClientRequiresSheetID(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("NewClient without sheet id should fail")
	}
}
