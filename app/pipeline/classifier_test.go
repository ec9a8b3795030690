package pipeline

import (
	"testing"

	"github.com/hyericho/backkeeper/app/config"
)

func TestClassify(t *testing.T) {
	classifier := NewClassifier(config.Default().Categories)

	tests := []struct {
		url      string
		expected string
	}{
		{"https://cdn.example.com/products/forklift-01.jpg", "safety-equipment"},
		{"https://cdn.example.com/products/FORKLIFT-02.JPG", "safety-equipment"},
		{"https://cdn.example.com/img/red-Helmet.png", "safety-equipment"},
		{"https://cdn.example.com/products/pallet-jack.jpg", "warehouse-equipment"},
		{"https://cdn.example.com/products/steel-rack.jpg", "warehouse-equipment"},
		{"https://cdn.example.com/products/teapot.jpg", "uncategorized"},
		{"", "uncategorized"},
	}

	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.expected {
			t.Errorf("Classify(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}

func TestClassifyAllEmpty(t *testing.T) {
	classifier := NewClassifier(config.Default().Categories)

	labels := classifier.ClassifyAll(nil)
	if len(labels) != 1 {
		t.Fatalf("Expected single-element catch-all set, got %v", labels)
	}
	if labels[0] != "uncategorized" {
		t.Errorf("Expected 'uncategorized', got %q", labels[0])
	}
}

func TestClassifyAllDeduplicates(t *testing.T) {
	classifier := NewClassifier(config.Default().Categories)

	labels := classifier.ClassifyAll([]string{
		"https://cdn.example.com/forklift-front.jpg",
		"https://cdn.example.com/forklift-side.jpg",
		"https://cdn.example.com/shelf.jpg",
	})

	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %v", labels)
	}
	if labels[0] != "safety-equipment" || labels[1] != "warehouse-equipment" {
		t.Errorf("Expected first-seen order, got %v", labels)
	}
}
