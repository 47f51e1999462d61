package modals

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"report.pdf", "report.docx", "notes.txt", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "reports"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestPathCompleter_Generate(t *testing.T) {
	dir := setupTree(t)
	pc := NewPathCompleter()

	pc.Generate(filepath.Join(dir, "rep"))
	want := []string{
		filepath.Join(dir, "report.docx"),
		filepath.Join(dir, "report.pdf"),
		filepath.Join(dir, "reports") + "/",
	}
	if got := pc.Matches(); !reflect.DeepEqual(got, want) {
		t.Errorf("Matches() = %v, want %v", got, want)
	}
	if got := pc.CommonPrefix(); got != filepath.Join(dir, "report") {
		t.Errorf("CommonPrefix() = %q", got)
	}
}

func TestPathCompleter_CaseInsensitive(t *testing.T) {
	dir := setupTree(t)
	pc := NewPathCompleter()
	pc.Generate(filepath.Join(dir, "NOTES"))
	if got := pc.Matches(); len(got) != 1 || got[0] != filepath.Join(dir, "notes.txt") {
		t.Errorf("Matches() = %v", got)
	}
}

func TestPathCompleter_HiddenFiles(t *testing.T) {
	dir := setupTree(t)
	pc := NewPathCompleter()

	pc.Generate(dir + "/")
	for _, m := range pc.Matches() {
		if filepath.Base(m) == ".hidden" {
			t.Error("hidden files should be skipped without a leading dot")
		}
	}

	pc.Generate(filepath.Join(dir, ".h"))
	if got := pc.Matches(); len(got) != 1 {
		t.Errorf("typing a dot should list hidden files, got %v", got)
	}
}

func TestPathCompleter_DirectoryGetsSlash(t *testing.T) {
	dir := setupTree(t)
	pc := NewPathCompleter()
	pc.Generate(filepath.Join(dir, "reports"))
	if got := pc.Matches(); len(got) != 1 || got[0] != filepath.Join(dir, "reports")+"/" {
		t.Errorf("Matches() = %v", got)
	}
}

func TestPathCompleter_MissingDir(t *testing.T) {
	pc := NewPathCompleter()
	pc.Generate("/definitely/not/here/x")
	if len(pc.Matches()) != 0 {
		t.Errorf("Matches() = %v, want none", pc.Matches())
	}
}

func TestPathCompleter_Reset(t *testing.T) {
	dir := setupTree(t)
	pc := NewPathCompleter()
	pc.Generate(filepath.Join(dir, "rep"))
	pc.Reset()
	if pc.Matches() != nil {
		t.Error("Reset should clear matches")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/docs/a.pdf", filepath.Join(home, "docs/a.pdf")},
		{"/abs/path", "/abs/path"},
		{"rel/~/x", "rel/~/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"abc"}, "abc"},
		{[]string{"report.pdf", "report.docx"}, "report."},
		{[]string{"a", "b"}, ""},
	}
	for _, tt := range tests {
		if got := commonPrefix(tt.in); got != tt.want {
			t.Errorf("commonPrefix(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
