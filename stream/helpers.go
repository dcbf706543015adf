package stream

import (
	"bufio"
	"bytes"
	"io"
)

// LineFilter returns an io.Reader that only outputs lines matching the predicate.
// Lines are delimited by '\n'. The predicate sees each line without its
// delimiter; kept lines are copied to the output unchanged, delimiter
// included. A final line without a delimiter is passed through as is.
//
// Example - keep only lines containing "ERROR":
//
//	r := stream.LineFilter(input, func(line []byte) bool {
//	    return bytes.Contains(line, []byte("ERROR"))
//	})
//	io.Copy(os.Stdout, r)
func LineFilter(r io.Reader, pred func(line []byte) bool) io.Reader {
	return &lineFilterReader{
		source: bufio.NewReaderSize(r, 4096),
		pred:   pred,
	}
}

// lineFilterReader implements io.Reader for LineFilter.
type lineFilterReader struct {
	source *bufio.Reader
	pred   func(line []byte) bool

	// Kept line not yet handed to the caller
	output []byte

	err error
}

func (r *lineFilterReader) Read(p []byte) (n int, err error) {
	for len(r.output) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.next()
	}

	n = copy(p, r.output)
	r.output = r.output[n:]
	return n, nil
}

// next reads one line and keeps it if the predicate accepts it. A read error
// is recorded and returned once the kept output is drained.
func (r *lineFilterReader) next() {
	line, err := r.source.ReadBytes('\n')
	if len(line) > 0 && r.pred(bytes.TrimSuffix(line, []byte{'\n'})) {
		r.output = line
	}
	if err != nil {
		r.err = err
	}
}
