package model

import (
	"net/http"
	"testing"
)

// TestPageComputeHash tests the ComputeHash method.
func TestPageComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("computes SHA256 hash of raw content", func(t *testing.T) {
		t.Parallel()

		page := &Page{
			Raw: []byte("Hello, World!"),
		}
		page.ComputeHash()

		// Expected SHA256 of "Hello, World!"
		expected := "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f"
		if page.Hash != expected {
			t.Errorf("got %q, expected %q", page.Hash, expected)
		}
	})

	t.Run("empty content produces empty hash", func(t *testing.T) {
		t.Parallel()

		page := &Page{Raw: nil}
		page.ComputeHash()

		if page.Hash != "" {
			t.Errorf("expected empty hash, got %q", page.Hash)
		}
	})
}

// TestPageGetHeader tests the GetHeader method.
func TestPageGetHeader(t *testing.T) {
	t.Parallel()

	page := &Page{
		Headers: http.Header{
			"Content-Type": {"text/html; charset=utf-8"},
			"Set-Cookie":   {"session=abc123", "theme=dark"},
		},
	}

	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{"canonical name", "Content-Type", "text/html; charset=utf-8"},
		{"lower case name", "content-type", "text/html; charset=utf-8"},
		{"first of many values", "Set-Cookie", "session=abc123"},
		{"missing header", "X-Missing", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := page.GetHeader(tc.header); got != tc.expected {
				t.Errorf("GetHeader(%q) = %q, expected %q", tc.header, got, tc.expected)
			}
		})
	}
}

// TestPageContentType tests IsHTML and IsImage.
func TestPageContentType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		contentType string
		html        bool
		image       bool
	}{
		{"text/html", true, false},
		{"text/html; charset=utf-8", true, false},
		{"TEXT/HTML", true, false},
		{"application/xhtml+xml", true, false},
		{"image/jpeg", false, true},
		{"image/webp", false, true},
		{"application/json", false, false},
		{"", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.contentType, func(t *testing.T) {
			t.Parallel()
			page := &Page{ContentType: tc.contentType}
			if got := page.IsHTML(); got != tc.html {
				t.Errorf("IsHTML() = %v, expected %v", got, tc.html)
			}
			if got := page.IsImage(); got != tc.image {
				t.Errorf("IsImage() = %v, expected %v", got, tc.image)
			}
		})
	}
}

// TestCrawledPageBroken tests the Broken method.
func TestCrawledPageBroken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		page     CrawledPage
		expected bool
	}{
		{"ok", CrawledPage{StatusCode: http.StatusOK}, false},
		{"redirect", CrawledPage{StatusCode: http.StatusMovedPermanently}, false},
		{"not found", CrawledPage{StatusCode: http.StatusNotFound}, true},
		{"server error", CrawledPage{StatusCode: http.StatusBadGateway}, true},
		{"fetch error", CrawledPage{Error: "connection refused"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.page.Broken(); got != tc.expected {
				t.Errorf("Broken() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
