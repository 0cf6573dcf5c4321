package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{
			name:     "plain text passes through",
			fragment: "just words",
			want:     "just words",
		},
		{
			name:     "markup stripped",
			fragment: "<p>Hello <b>bold</b> world</p>",
			want:     "Hello bold world",
		},
		{
			name:     "whitespace collapsed",
			fragment: "<div>\n  spread\t\tover\n\n  lines  </div>",
			want:     "spread over lines",
		},
		{
			name:     "script and style skipped",
			fragment: "<p>visible</p><script>var x = 1;</script><style>p{color:red}</style>",
			want:     "visible",
		},
		{
			name:     "nested structure",
			fragment: "<article><h1>Title</h1><p>First.</p><p>Second.</p></article>",
			want:     "Title First. Second.",
		},
		{
			name:     "unclosed tags tolerated",
			fragment: "<p>broken <b>markup",
			want:     "broken markup",
		},
		{
			name:     "empty input",
			fragment: "",
			want:     "",
		},
		{
			name:     "image only",
			fragment: `<img src="https://example.com/x.png">`,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.fragment)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstImage(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
		wantOK   bool
	}{
		{
			name:     "single image",
			fragment: `<p>text</p><img src="https://example.com/a.png">`,
			want:     "https://example.com/a.png",
			wantOK:   true,
		},
		{
			name:     "first of several in document order",
			fragment: `<div><img src="https://example.com/1.jpg"></div><img src="https://example.com/2.jpg">`,
			want:     "https://example.com/1.jpg",
			wantOK:   true,
		},
		{
			name:     "deeply nested image",
			fragment: `<div><figure><picture><img src="https://example.com/deep.png"></picture></figure></div>`,
			want:     "https://example.com/deep.png",
			wantOK:   true,
		},
		{
			name:     "image without src skipped",
			fragment: `<img alt="no source"><img src="https://example.com/real.png">`,
			want:     "https://example.com/real.png",
			wantOK:   true,
		},
		{
			name:     "no image",
			fragment: "<p>words only</p>",
			wantOK:   false,
		},
		{
			name:     "empty input",
			fragment: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstImage(tt.fragment)
			if ok != tt.wantOK {
				t.Fatalf("FirstImage ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FirstImage mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
