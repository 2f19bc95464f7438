package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/blocks/pkg/errors"
)

// minimalPDF builds an uncompressed PDF with n empty pages and a correct
// cross-reference table.
func minimalPDF(n int) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for range n {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	for _, n := range []int{1, 3} {
		got, err := PageCount(minimalPDF(n))
		if err != nil {
			t.Fatalf("PageCount(%d pages): %v", n, err)
		}
		if got != n {
			t.Errorf("PageCount() = %d, want %d", got, n)
		}
	}
}

func TestPageCountRejectsGarbage(t *testing.T) {
	_, err := PageCount([]byte("not a pdf"))
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error = %v, want EXPORT_FAILED", err)
	}
}

func TestSinkFunc(t *testing.T) {
	var gotTitle string
	var sink Sink = SinkFunc(func(_ context.Context, title, html string) ([]byte, error) {
		gotTitle = title
		return []byte(html), nil
	})
	out, err := sink.Print(context.Background(), "doc", "<p>x</p>")
	if err != nil || string(out) != "<p>x</p>" || gotTitle != "doc" {
		t.Errorf("SinkFunc.Print() = %q, %v (title %q)", out, err, gotTitle)
	}
}

func TestNewRodOptions(t *testing.T) {
	r := NewRod(WithControlURL("ws://127.0.0.1:9222"), WithSettle(time.Second))
	if r.controlURL != "ws://127.0.0.1:9222" || r.settle != time.Second {
		t.Errorf("options not applied: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on an unused sink = %v", err)
	}
}

func TestRodConnectFailureKillsLauncher(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	dead := "ws://" + ln.Addr().String() + "/devtools/browser/gone"
	ln.Close()

	var launches, kills int
	r := NewRod()
	r.launch = func() (string, func(), error) {
		launches++
		return dead, func() { kills++ }, nil
	}

	for i := range 2 {
		_, err := r.Print(context.Background(), "test", "<p>x</p>")
		if !errors.Is(err, errors.ErrCodeExportFailed) {
			t.Fatalf("Print() #%d error = %v, want %s", i, err, errors.ErrCodeExportFailed)
		}
	}
	if launches != 2 || kills != 2 {
		t.Errorf("launches = %d, kills = %d, want 2 and 2", launches, kills)
	}
	if r.browser != nil || r.kill != nil {
		t.Error("failed connect left browser state behind")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if kills != 2 {
		t.Errorf("Close() killed again: kills = %d", kills)
	}
}

// TestRodPrint needs a local Chrome; set BLOCKS_TEST_CHROME=1 to run it.
func TestRodPrint(t *testing.T) {
	if os.Getenv("BLOCKS_TEST_CHROME") == "" {
		t.Skip("BLOCKS_TEST_CHROME not set")
	}
	r := NewRod(WithSettle(100 * time.Millisecond))
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	pdf, err := r.Print(ctx, "test", "<!DOCTYPE html><html><body><h1>Hello</h1></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	if n, err := PageCount(pdf); err != nil || n != 1 {
		t.Errorf("PageCount() = %d, %v", n, err)
	}
}
