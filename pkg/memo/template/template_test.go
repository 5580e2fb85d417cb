package template

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltin(t *testing.T) {
	reg := Builtin()

	for _, id := range []string{"ifrs", "asc805"} {
		tpl := reg.Get(id)
		if tpl == nil {
			t.Fatalf("builtin registry is missing %q", id)
		}
		if len(tpl.Sections) == 0 {
			t.Errorf("template %q has no sections", id)
		}
		for _, s := range tpl.Sections {
			if s.ID == "" || s.Title == "" {
				t.Errorf("template %q has a section without id or title: %+v", id, s)
			}
		}
	}

	if reg.Get("frs102") != nil {
		t.Error("unknown standard should return nil")
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	reg := Builtin()
	if reg.Get("IFRS") == nil {
		t.Error("Get should match standard ids case-insensitively")
	}
}

func TestLoadDir(t *testing.T) {
	t.Run("missing directory falls back to builtin", func(t *testing.T) {
		reg, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if reg.Get("ifrs") == nil {
			t.Error("fallback registry is missing builtin templates")
		}
	})

	t.Run("loads json templates", func(t *testing.T) {
		dir := t.TempDir()
		tpl := `{"standard_id": "frs102", "title": "Memo (FRS 102)", "sections": [{"id": "overview", "title": "Overview", "query_hints": ["parties"]}]}`
		if err := os.WriteFile(filepath.Join(dir, "frs102.json"), []byte(tpl), 0o644); err != nil {
			t.Fatal(err)
		}

		reg, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		loaded := reg.Get("frs102")
		if loaded == nil {
			t.Fatal("loaded registry is missing frs102")
		}
		if loaded.Title != "Memo (FRS 102)" || len(loaded.Sections) != 1 {
			t.Errorf("loaded template = %+v", loaded)
		}
	})

	t.Run("rejects template without sections", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"standard_id": "bad"}`), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadDir(dir); err == nil {
			t.Error("LoadDir() should reject a template without sections")
		}
	})

	t.Run("empty directory falls back to builtin", func(t *testing.T) {
		reg, err := LoadDir(t.TempDir())
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if reg.Get("asc805") == nil {
			t.Error("fallback registry is missing builtin templates")
		}
	})
}
