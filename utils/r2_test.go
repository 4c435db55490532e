package utils

import (
	"strings"
	"testing"
)

func TestPodObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		awb      string
		filename string
		want     string
	}{
		{"jpeg upload", "AWB250000007", "proof.jpg", "pod/AWB250000007/pod.jpg"},
		{"uppercase extension", "AWB250000007", "IMG_0042.PNG", "pod/AWB250000007/pod.png"},
		{"no extension defaults to jpg", "AWB250000007", "proof", "pod/AWB250000007/pod.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := podObjectKey(tt.awb, tt.filename); got != tt.want {
				t.Errorf("key: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObjectURLMatchesKey(t *testing.T) {
	// The public URL must point at the same key the object was stored
	// under, pod/ prefix included.
	key := podObjectKey("AWB250000007", "proof.jpg")
	got := objectURL("https://cdn.example.com", key)
	want := "https://cdn.example.com/pod/AWB250000007/pod.jpg"
	if got != want {
		t.Errorf("pod url: got %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "/"+key) {
		t.Errorf("url %q does not end with key %q", got, key)
	}

	key = invoiceObjectKey("INV000042")
	got = objectURL("https://cdn.example.com/", key)
	want = "https://cdn.example.com/invoices/INV000042.pdf"
	if got != want {
		t.Errorf("invoice url: got %q, want %q", got, want)
	}
}

func TestObjectURLEscapesSegments(t *testing.T) {
	got := objectURL("https://cdn.example.com", "pod/AWB 25/pod.jpg")
	want := "https://cdn.example.com/pod/AWB%2025/pod.jpg"
	if got != want {
		t.Errorf("escaped url: got %q, want %q", got, want)
	}
}
