package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/nexara/nexara/internal/errors"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		name string
		want IconKind
	}{
		{"report.pdf", IconPDF},
		{"REPORT.PDF", IconPDF},
		{"letter.doc", IconWord},
		{"letter.docx", IconWord},
		{"budget.xls", IconSpreadsheet},
		{"budget.xlsx", IconSpreadsheet},
		{"data.csv", IconSpreadsheet},
		{"deck.ppt", IconSlides},
		{"deck.pptx", IconSlides},
		{"main.py", IconCode},
		{"app.js", IconCode},
		{"site.css", IconCode},
		{"index.html", IconCode},
		{"notes.txt", IconGeneric},
		{"archive.tar.gz", IconGeneric},
		{"Makefile", IconGeneric},
		{"", IconGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IconFor(tt.name).Kind)
		})
	}
}

func TestIconFor_HasGlyphAndLabel(t *testing.T) {
	for kind := IconGeneric; kind <= IconCode; kind++ {
		icon := icons[kind]
		assert.NotEmpty(t, icon.Glyph, "kind %d", kind)
		assert.NotEmpty(t, icon.Label, "kind %d", kind)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 200, 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoad_Empty(t *testing.T) {
	p, err := Load(nil)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestLoad_Image(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 200, 100)

	p, err := Load([]string{path})
	require.NoError(t, err)
	assert.True(t, p.IsImage())
	assert.Equal(t, "image/png", p.ContentType)
	assert.Equal(t, "photo.png", p.Name)
	require.NotNil(t, p.Thumbnail)
	b := p.Thumbnail.Bounds()
	assert.LessOrEqual(t, b.Dx(), ThumbnailWidth)
	assert.LessOrEqual(t, b.Dy(), ThumbnailHeight)
}

func TestLoad_SniffsImageWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot")
	writePNG(t, path, 8, 8)

	p, err := Load([]string{path})
	require.NoError(t, err)
	assert.True(t, p.IsImage())
	assert.Equal(t, "image/png", p.ContentType)
}

func TestLoad_Document(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 lots of content here"), 0644))

	p, err := Load([]string{path, filepath.Join(dir, "ignored.png")})
	require.NoError(t, err)
	assert.False(t, p.IsImage())
	assert.Nil(t, p.Thumbnail)
	assert.Equal(t, IconPDF, p.Icon.Kind)
	assert.Equal(t, "report.pdf", p.Name)
	assert.Equal(t, int64(29), p.Size)
}

func TestLoad_TinyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

	p, err := Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, IconCode, p.Icon.Kind)
}

func TestLoad_BrokenImageFallsBackToIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not really a png"), 0644))

	p, err := Load([]string{path})
	require.NoError(t, err)
	assert.False(t, p.IsImage())
	assert.Equal(t, IconGeneric, p.Icon.Kind)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "gone.pdf")})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindNotFound))
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load([]string{t.TempDir()})
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.KindInvalid))
}

func TestSniffType_Unknown(t *testing.T) {
	assert.Equal(t, "application/octet-stream", sniffType([]byte("hello")))
	assert.Equal(t, "application/octet-stream", sniffType(nil))
}
