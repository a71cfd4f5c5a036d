package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseColours(t *testing.T) {
	tests := []struct {
		name    string
		hexes   []string
		want    int
		wantErr bool
	}{
		{
			name:  "plain hex list",
			hexes: []string{"#ff0000", "#00ff00", "#0000ff"},
			want:  3,
		},
		{
			name:  "missing hash prefix accepted",
			hexes: []string{"ff0000"},
			want:  1,
		},
		{
			name:  "blank entries skipped",
			hexes: []string{"#ff0000", "", "  ", "#0000ff"},
			want:  2,
		},
		{
			name:    "malformed colour",
			hexes:   []string{"#zzzzzz"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColours(tt.hexes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColours() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(got) != tt.want {
				t.Errorf("ParseColours() returned %d colours, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReadColourFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "json array",
			content: `["#ff0000", "#00ff00"]`,
			want:    2,
		},
		{
			name:    "one colour per line",
			content: "#ff0000\n\n#00ff00\n#0000ff\n",
			want:    3,
		},
		{
			name:    "malformed json",
			content: `["#ff0000",`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := ReadColourFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadColourFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(got) != tt.want {
				t.Errorf("ReadColourFile() returned %d colours, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := ReadColourFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("ReadColourFile should fail for a missing file")
	}
}
