package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestExtractPlainText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "  machine learning notes\n")

	text, err := New().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "machine learning notes" {
		t.Errorf("Extract = %q", text)
	}
}

func TestExtractHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", `<html>
<head><title>Title</title><style>body { color: red }</style></head>
<body><p>machine <b>learning</b> data</p><script>var x = "hidden";</script></body>
</html>`)

	text, err := New().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, want := range []string{"machine", "learning", "data"} {
		if !strings.Contains(text, want) {
			t.Errorf("Extract missing %q in %q", want, text)
		}
	}
	for _, hidden := range []string{"hidden", "color"} {
		if strings.Contains(text, hidden) {
			t.Errorf("Extract leaked %s content: %q", hidden, text)
		}
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := New().Extract(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Extract of a missing file should fail")
	}
}

func TestExtractMalformedPDF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.pdf", "not a real pdf")

	if _, err := New().Extract(path); err == nil {
		t.Error("Extract of a malformed PDF should fail")
	}
}
