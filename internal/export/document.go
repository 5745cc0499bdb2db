// Package export renders list data as CSV, XLSX, PDF and printable HTML,
// and dispatches print jobs.
package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Document is a titled table plus the branding from the export settings.
type Document struct {
	Title   string
	Headers []string
	Rows    [][]string
	Header  string
	Footer  string
	Logo    *Image
	LogoURL string
	Created time.Time
}

type Image struct {
	Data []byte
	Type string // "png" or "jpg"
}

func ContentType(format string) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename builds the download name <base>_<yyyy-mm-dd>.<format>.
func Filename(base, format string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("2006-01-02"), format)
}

// Write renders doc in the requested format.
func Write(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatCSV, "":
		return WriteCSV(w, doc)
	case FormatXLSX:
		return WriteXLSX(w, doc)
	case FormatPDF:
		return WritePDF(w, doc)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// FetchLogo downloads the logo image. Only PNG and JPEG are accepted.
func FetchLogo(ctx context.Context, client *http.Client, url string) (*Image, error) {
	typ := imageType(url)
	if typ == "" {
		return nil, fmt.Errorf("logo %s: unsupported image type", url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	return &Image{Data: data, Type: typ}, nil
}

func imageType(url string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.SplitN(url, "?", 2)[0]), "."))
	switch ext {
	case "png":
		return "png"
	case "jpg", "jpeg":
		return "jpg"
	}
	return ""
}
