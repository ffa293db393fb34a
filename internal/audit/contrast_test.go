package audit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContrastRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		c1, c2 string
		want   float64
	}{
		{name: "black on white", c1: "#000000", c2: "#ffffff", want: 21},
		{name: "short hex", c1: "#fff", c2: "#000", want: 21},
		{name: "rgb notation", c1: "rgb(255, 255, 255)", c2: "#000", want: 21},
		{name: "same color", c1: "#777777", c2: "#777777", want: 1},
		{name: "named colors are black", c1: "red", c2: "#000", want: 1},
		{name: "grey on white", c1: "#ffffff", c2: "#767676", want: 4.54},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ContrastRatio(tt.c1, tt.c2)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ContrastRatio(%q, %q) = %.3f, want %.2f", tt.c1, tt.c2, got, tt.want)
			}
		})
	}
}

func TestExtractCSSColors(t *testing.T) {
	t.Parallel()

	css := "body{background-color:#fff;color:#333} a{color:#00f} .x{background:transparent} p{color:#333}"
	got := extractCSSColors(css)

	if diff := cmp.Diff([]string{"#fff"}, got.background); diff != "" {
		t.Errorf("background mismatch (-want +got):\n%s", diff)
	}
	// color: also matches inside background-color:
	if diff := cmp.Diff([]string{"#fff", "#333", "#00f"}, got.text); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#00f"}, got.link); diff != "" {
		t.Errorf("link mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeContrast(t *testing.T) {
	t.Parallel()

	result := analyzeContrast("body{background-color:#fff;color:#333} a{color:#00f}")

	if !result.HasIssues {
		t.Fatal("HasIssues = false, want true")
	}
	if len(result.Issues) != 1 || result.Issues[0].Text != "#fff" || result.Issues[0].Ratio != 1 {
		t.Errorf("issues = %+v", result.Issues)
	}
	if len(result.CompliantPairs) != 2 {
		t.Errorf("compliant pairs = %+v", result.CompliantPairs)
	}

	empty := analyzeContrast("")
	if empty.HasIssues || empty.Issues == nil || empty.CompliantPairs == nil {
		t.Errorf("empty stylesheet result = %+v", empty)
	}
}
