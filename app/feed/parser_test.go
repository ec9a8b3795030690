package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyericho/backkeeper/app/config"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(config.Default().Feed, "Backkeeper Test/1.0")
}

func TestParseBasic(t *testing.T) {
	data := []byte("name,qty,price\n안전모,3,12000\n지게차 장갑,1,3500\n")

	rows, err := newTestFetcher().Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].Name != "안전모" {
		t.Errorf("Expected name '안전모', got '%s'", rows[0].Name)
	}
	if rows[0].Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", rows[0].Quantity)
	}
	if rows[0].Price != 12000 {
		t.Errorf("Expected price 12000, got %d", rows[0].Price)
	}
}

func TestParseKoreanAliasColumns(t *testing.T) {
	data := []byte("상품명,수량,가격\n파렛트,2,45000\n")

	rows, err := newTestFetcher().Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Name != "파렛트" {
		t.Errorf("Expected name from alias column, got '%s'", rows[0].Name)
	}
	if rows[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", rows[0].Quantity)
	}
}

func TestParseQuantityDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected int
	}{
		{"blank", "", 1},
		{"malformed", "many", 1},
		{"negative", "-2", 1},
		{"zero", "0", 0},
		{"normal", "7", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseQuantity(tt.cell); got != tt.expected {
				t.Errorf("parseQuantity(%q) = %d, expected %d", tt.cell, got, tt.expected)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"₩12,000", 12000},
		{"12000원", 12000},
		{"12000", 12000},
		{"", 0},
		{"무료", 0},
		{"₩", 0},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.value); got != tt.expected {
			t.Errorf("ParsePrice(%q) = %d, expected %d", tt.value, got, tt.expected)
		}
	}
}

func TestParseNamePlaceholder(t *testing.T) {
	data := []byte("name,상품명,qty,price\n,,1,1000\n")

	rows, err := newTestFetcher().Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if rows[0].Name != "unnamed" {
		t.Errorf("Expected placeholder name, got '%s'", rows[0].Name)
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	// \xff is not valid UTF-8; the decoder must replace it, not fail
	data := []byte("name,qty,price\nbad\xffname,1,100\n")

	rows, err := newTestFetcher().Parse(data)
	if err != nil {
		t.Fatalf("Lossy decode should not fail: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Name == "" {
		t.Error("Expected a replaced name, not empty")
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "Backkeeper Test/1.0" {
			t.Errorf("Missing user agent, got '%s'", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("name,qty,price\n랙 선반,4,89000\n"))
	}))
	defer server.Close()

	rows, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Price != 89000 {
		t.Errorf("Expected price 89000, got %d", rows[0].Price)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Error("Expected error for non-success status")
	}
}
