package filetype

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"github.com/abdidvp/rulecheck/internal/domain"
)

// Inspector implements domain.FileInspector by sniffing file content.
// Documents must be PDFs; datasets must be CSV, either detected from content
// or plain text carrying a .csv extension.
type Inspector struct{}

// New creates an Inspector.
func New() *Inspector { return &Inspector{} }

// Inspect stats and sniffs path. Mismatched types wrap domain.ErrUnsupportedFile.
func (i *Inspector) Inspect(path string, kind domain.UploadKind) (domain.UploadSelection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.UploadSelection{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.UploadSelection{}, fmt.Errorf("%s is a directory: %w", path, domain.ErrUnsupportedFile)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.UploadSelection{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}

	sel := domain.UploadSelection{
		Path:     path,
		Name:     filepath.Base(path),
		Kind:     kind,
		MIMEType: domain.AcceptedMIME[kind],
		Size:     info.Size(),
	}

	switch kind {
	case domain.UploadDocument:
		if !mt.Is("application/pdf") {
			return domain.UploadSelection{}, unsupported(path, mt, kind)
		}
		sel.Pages = pageCount(path)
	case domain.UploadDataset:
		csvExt := strings.EqualFold(filepath.Ext(path), ".csv")
		if !mt.Is("text/csv") && !(csvExt && isText(mt)) {
			return domain.UploadSelection{}, unsupported(path, mt, kind)
		}
	default:
		return domain.UploadSelection{}, fmt.Errorf("unknown upload kind %q", kind)
	}

	return sel, nil
}

func unsupported(path string, mt *mimetype.MIME, kind domain.UploadKind) error {
	return fmt.Errorf("%s is %s, expected %s: %w", filepath.Base(path), mt.String(), domain.AcceptedMIME[kind], domain.ErrUnsupportedFile)
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// pageCount returns 0 when the PDF cannot be parsed; the remote service
// is the authority on whether a document is usable.
func pageCount(path string) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}
