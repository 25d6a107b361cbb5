package lint

import (
	"path/filepath"
	"testing"
)

func TestDiscoverSingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "astrond.conf", "x: 1")

	files, err := Discover(path, []string{".yml"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("Discover() = %v, want [%s]", files, path)
	}
}

func TestDiscoverExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", "")
	writeFile(t, dir, "b.YAML", "")
	writeFile(t, dir, "c.json", "")

	tests := []struct {
		name       string
		extensions []string
		want       []string
	}{
		{name: "yaml only", extensions: []string{".yaml", ".yml"}, want: []string{"a.yml", "b.YAML"}},
		{name: "json only", extensions: []string{".json"}, want: []string{"c.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover(dir, tt.extensions)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if len(files) != len(tt.want) {
				t.Fatalf("Discover() = %v, want %v", files, tt.want)
			}
			for i, f := range files {
				if filepath.Base(f) != tt.want[i] {
					t.Errorf("files[%d] = %q, want %q", i, filepath.Base(f), tt.want[i])
				}
			}
		})
	}
}
