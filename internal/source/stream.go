package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"strings"
)

// maxLineLen bounds one record. Longer lines are discarded whole.
const maxLineLen = 4096

// ReadLines reads newline-delimited records from r and emits every line
// that parses. It returns when r is exhausted, a read fails, or ctx is
// cancelled; a clean EOF returns nil.
func ReadLines(ctx context.Context, r io.Reader, emit func(Sample)) error {
	br := bufio.NewReaderSize(r, maxLineLen)
	overlong := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk, err := br.ReadSlice('\n')
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			if !overlong {
				log.Printf("source: dropped line longer than %d bytes", maxLineLen)
			}
			overlong = true
			continue
		}

		if overlong {
			// tail of a discarded line
			overlong = false
		} else {
			handleLine(string(chunk), emit)
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func handleLine(line string, emit func(Sample)) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	s, ok := ParseLine(line)
	if !ok {
		log.Printf("source: dropped line %q", line)
		return
	}
	emit(s)
}
