// oggnotes extracts the free-form notes track from an interleaved Ogg
// capture and prints each note with its timestamp, either as plain text or
// (with -f audacity) as an Audacity label-track XML fragment suitable for
// pasting into an Audacity project file.
//
// Usage:
//
//	oggnotes [-f audacity] < capture.ogg
//
// Grounded on cook/extnotes.c, minus its Windows ACL-restoration branch
// (out of scope for a stream filter).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oggkitchen/cook/container/ogg"
	"github.com/oggkitchen/cook/internal/pipeio"
)

// notePrefix marks a data packet on the notes stream as an actual note
// rather than some other control payload sharing the stream.
const notePrefix = "NOTE"

func main() {
	format := flag.String("f", "", "output format: \"audacity\" for a label-track XML fragment, default plain text")
	flag.Parse()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if err := run(os.Stdin, w, *format == "audacity"); err != nil {
		fmt.Fprintln(os.Stderr, "oggnotes:", err)
		os.Exit(1)
	}
}

func run(src io.Reader, dst io.Writer, audacity bool) error {
	reader := pipeio.NewPageReader(src)

	var noteStreamNo uint32
	haveNoteStream := false
	wroteHeader := false

	for {
		page, err := reader.ReadPage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if page.GranulePos == 0 && len(page.Payload) == len(ogg.NoteStreamMagic) &&
			string(page.Payload) == ogg.NoteStreamMagic {
			noteStreamNo = page.SerialNumber
			haveNoteStream = true
			continue
		}
		if !haveNoteStream && page.GranulePos > 0 {
			break
		}
		if page.SerialNumber != noteStreamNo {
			continue
		}
		if len(page.Payload) < 4 || string(page.Payload[:4]) != notePrefix {
			continue
		}

		timeSeconds := float64(page.GranulePos) / 48000.0
		if !wroteHeader {
			writeHeader(dst, audacity)
			wroteHeader = true
		}
		writeNote(dst, timeSeconds, page.Payload[4:], audacity)
	}

	if audacity && wroteHeader {
		fmt.Fprintln(dst, "\t</labeltrack>")
	}
	return nil
}

func writeHeader(dst io.Writer, audacity bool) {
	if audacity {
		fmt.Fprintln(dst, "\t<labeltrack name=\"Label Track\" height=\"73\" minimized=\"0\">")
	} else {
		fmt.Fprint(dst, "Notes:\r\n")
	}
}

func writeNote(dst io.Writer, timeSeconds float64, body []byte, audacity bool) {
	if audacity {
		fmt.Fprintf(dst, "\t\t<label t=\"%f\" t1=\"%f\" title=\"", timeSeconds, timeSeconds)
		escapeNote(dst, body)
		fmt.Fprint(dst, "\"/>\n")
		return
	}

	h := int(timeSeconds / 3600)
	rem := timeSeconds - float64(h)*3600
	m := int(rem / 60)
	rem -= float64(m) * 60
	fmt.Fprintf(dst, "\t%d:%02d:%02d: ", h, m, int(rem))
	escapeNote(dst, body)
	fmt.Fprint(dst, "\r\n")
}

// escapeNote writes body to dst escaping quote, backslash, and newline
// characters the way an Audacity label-track attribute requires; the plain
// text format reuses the same escaping rather than introducing a second
// one for a distinction no reader would notice.
func escapeNote(dst io.Writer, body []byte) {
	var b strings.Builder
	for _, c := range body {
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	io.WriteString(dst, b.String())
}
