// Package preview builds the local preview of a file attached to the next
// chat message. Nothing here uploads; the file is only read.
package preview

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	perrors "github.com/nexara/nexara/internal/errors"
	"github.com/nexara/nexara/internal/logger"
)

const (
	// ProbeBytes is how much of a non-image file is read before showing it.
	ProbeBytes = 10
	// sniffBytes is what filetype needs to recognise a file by content.
	sniffBytes = 262

	// ThumbnailWidth and ThumbnailHeight bound the thumbnail in pixels.
	// Each terminal cell shows two vertical pixels.
	ThumbnailWidth  = 24
	ThumbnailHeight = 16

	// MaxImageBytes caps how much is read to build a thumbnail.
	MaxImageBytes = 20 << 20
)

// Kind says how a preview is shown.
type Kind int

const (
	KindDocument Kind = iota
	KindImage
)

// Preview is a file waiting to be sent with the next message.
type Preview struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
	Kind        Kind
	Icon        Icon
	Thumbnail   image.Image // set when Kind is KindImage
}

// IsImage reports whether the preview shows a thumbnail.
func (p *Preview) IsImage() bool {
	return p.Kind == KindImage
}

// Load previews the first of paths; the rest are ignored. An empty list
// returns (nil, nil).
func Load(paths []string) (*Preview, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	return loadFile(paths[0])
}

func loadFile(path string) (*Preview, error) {
	const op = perrors.Op("preview.Load")

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, perrors.FileNotFound(op, path)
	}
	if err != nil {
		return nil, perrors.FileReadFailed(op, path, err)
	}
	if info.IsDir() {
		return nil, perrors.E(op, perrors.KindInvalid, perrors.Msg(filepath.Base(path)+" is a directory"))
	}

	p := &Preview{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		Icon: IconFor(path),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.FileReadFailed(op, path, err)
	}
	defer f.Close()

	p.ContentType = declaredType(path)
	if p.ContentType == "" {
		head := make([]byte, sniffBytes)
		n, _ := io.ReadFull(f, head)
		p.ContentType = sniffType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, perrors.FileReadFailed(op, path, err)
		}
	}

	if strings.HasPrefix(p.ContentType, "image/") {
		thumb, err := thumbnail(f)
		if err == nil {
			p.Kind = KindImage
			p.Thumbnail = thumb
			return p, nil
		}
		// Fall through to an icon preview; the file can still be attached.
		logger.WithComponent("preview").Warn("could not decode image", "file", p.Name, "error", err)
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, perrors.FileReadFailed(op, path, err)
		}
	}

	probe := make([]byte, ProbeBytes)
	if _, err := io.ReadFull(f, probe); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, perrors.FileReadFailed(op, path, err)
	}
	p.Kind = KindDocument
	return p, nil
}

// declaredType is the MIME type implied by the file name, without parameters.
func declaredType(path string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}

// sniffType guesses the MIME type from the leading bytes.
func sniffType(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

func thumbnail(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return resize.Thumbnail(ThumbnailWidth, ThumbnailHeight, img, resize.Bilinear), nil
}
