package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleDoc() Document {
	return Document{
		Title:   "Otpremnice",
		Headers: []string{"Broj", "Kupac", "Napomena"},
		Rows: [][]string{
			{"OTP-1", "Drvo, d.o.o.", `rekao "hitno"`},
			{"OTP-2", "Gradnja", "prvi red\ndrugi red"},
		},
		Footer:  "Pilana",
		Created: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleDoc()); err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "Broj,Kupac,Napomena\r\n" +
		"OTP-1,\"Drvo, d.o.o.\",\"rekao \"\"hitno\"\"\"\r\n" +
		"OTP-2,Gradnja,\"prvi red\r\ndrugi red\"\r\n"
	if got := buf.String(); got != want {
		t.Fatalf("csv mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleDoc()); err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 || rows[0][1] != "Kupac" || rows[1][1] != "Drvo, d.o.o." {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestWritePDF(t *testing.T) {
	doc := sampleDoc()
	for i := 0; i < 80; i++ {
		doc.Rows = append(doc.Rows, []string{"OTP-x", "Kupac", "red"})
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if n := bytes.Count(buf.Bytes(), []byte("/Type /Page\n")); n < 2 {
		t.Fatalf("expected the table to span several pages, got %d", n)
	}
}

func TestWritePDFEmbedsUnicodeFont(t *testing.T) {
	doc := Document{
		Title:   "Ponude",
		Headers: []string{"Kupac", "Status", "Prečnik"},
		Rows:    [][]string{{"Đurđević", "na-čekanju", "potvrđena"}},
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Encoding /Identity-H")) {
		t.Fatal("expected a Unicode (Identity-H) font in the document")
	}
	if bytes.Contains(buf.Bytes(), []byte("/BaseFont /Helvetica")) {
		t.Fatal("core Helvetica font cannot encode č, ć or đ")
	}
}

func TestWriteHTMLEscapes(t *testing.T) {
	doc := sampleDoc()
	doc.Rows = [][]string{{"<script>alert(1)</script>", "a & b", ""}}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc); err != nil {
		t.Fatalf("html: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Fatalf("cell text not escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") || !strings.Contains(out, "a &amp; b") {
		t.Fatalf("escaped text missing: %s", out)
	}
	if !strings.Contains(out, "<title>Otpremnice</title>") || !strings.Contains(out, "15.01.2024 08:30") {
		t.Fatalf("title or footer missing: %s", out)
	}
}

func TestDispatch(t *testing.T) {
	sender := &SimulatedSender{}
	d := NewDispatcher(sender)
	d.now = func() time.Time { return time.UnixMilli(1700000000123) }
	ctx := context.Background()

	res, err := d.Dispatch(ctx, DefaultPrintSettings(), "ponude", "<html></html>")
	if err != nil || res.Method != MethodBrowser || !res.Success {
		t.Fatalf("browser dispatch = %+v, %v", res, err)
	}

	settings := DefaultPrintSettings()
	settings.NetworkPrinter = NetworkPrinter{Enabled: true, IP: "192.168.1.100", Protocol: "ipp"}
	res, err = d.Dispatch(ctx, settings, "ponude", "<html></html>")
	if err != nil {
		t.Fatalf("network dispatch: %v", err)
	}
	if res.Method != MethodNetwork || res.JobID != "network_1700000000123" {
		t.Fatalf("network result = %+v", res)
	}
	jobs := sender.Jobs()
	if len(jobs) != 1 || jobs[0].Printer != "Printer 192.168.1.100" || jobs[0].Module != "ponude" {
		t.Fatalf("jobs = %+v", jobs)
	}

	settings.NetworkPrinter.IP = ""
	if res, _ := d.Dispatch(ctx, settings, "ponude", ""); res.Method != MethodBrowser {
		t.Fatalf("enabled printer without ip should fall back to browser, got %+v", res)
	}
}

func TestFilenameAndFormat(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := Filename("ponude", FormatXLSX, now); got != "ponude_2024-03-09.xlsx" {
		t.Fatalf("filename = %q", got)
	}
	var buf bytes.Buffer
	if err := Write(&buf, "docx", sampleDoc()); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if imageType("https://x/logo.PNG?v=2") != "png" || imageType("https://x/logo.svg") != "" {
		t.Fatalf("image type detection failed")
	}
}
