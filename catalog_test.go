package cktext

import (
	"errors"
	"testing"
)

func TestImportJSONCatalog(t *testing.T) {
	g := newTestGroup()
	data := []byte(`{
		"hello": "你好",
		"menu": {"file": {"open": "打开"}, "quit": "退出"},
		"todo": null,
		"count": 3
	}`)

	n, err := g.ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if n != 5 {
		t.Errorf("imported %d pairs, want 5", n)
	}

	want := map[string]string{
		"hello":          "你好",
		"menu.file.open": "打开",
		"menu.quit":      "退出",
		"count":          "3",
	}
	for src, trs := range want {
		if got, ok := g.Lookup(src, ""); !ok || got != trs {
			t.Errorf("%s = %q, %v; want %q", src, got, ok, trs)
		}
	}
	if got, ok := g.Lookup("todo", "def"); !ok || got != "def" {
		t.Errorf("todo = %q, %v; want untranslated", got, ok)
	}
}

func TestImportYAMLCatalog(t *testing.T) {
	g := newTestGroup()
	data := []byte(`
greeting: 你好
errors:
  not_found: 未找到
  denied: 拒绝
pending:
`)

	n, err := g.ImportYAML(data)
	if err != nil {
		t.Fatalf("ImportYAML: %v", err)
	}
	if n != 4 {
		t.Errorf("imported %d pairs, want 4", n)
	}
	if got, _ := g.Lookup("errors.not_found", ""); got != "未找到" {
		t.Errorf("errors.not_found = %q", got)
	}
	if got, ok := g.Lookup("pending", "def"); !ok || got != "def" {
		t.Errorf("pending = %q, %v", got, ok)
	}
}

// TestImportCatalogAtomic verifies that a catalog with an invalid key leaves
// the group unchanged.
func TestImportCatalogAtomic(t *testing.T) {
	g := newTestGroup()
	g.Set("keep", "me")

	_, err := g.ImportJSON([]byte(`{"ok": "fine", "": "empty key"}`))
	if !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("ImportJSON = %v, want ErrInvalidSource", err)
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
}

func TestImportCatalogMalformed(t *testing.T) {
	g := newTestGroup()
	if _, err := g.ImportJSON([]byte(`[1, 2]`)); err == nil {
		t.Error("ImportJSON accepted an array")
	}
	if _, err := g.ImportYAML([]byte("key: [unterminated")); err == nil {
		t.Error("ImportYAML accepted malformed YAML")
	}
}
