package turn

import (
	"bytes"
	"strings"
)

// lineFramer reassembles raw stdout chunks into complete lines. Process
// output arrives in arbitrary byte chunks that rarely align with record
// boundaries, so the framer buffers the trailing fragment until its newline
// shows up.
type lineFramer struct {
	buf bytes.Buffer
}

// Push appends a chunk and returns every complete line it closed off, with
// line endings and surrounding whitespace trimmed. Blank lines are dropped.
func (f *lineFramer) Push(chunk []byte) []string {
	f.buf.Write(chunk)

	var lines []string
	for {
		raw := f.buf.Bytes()
		i := bytes.IndexByte(raw, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(raw[:i]))
		f.buf.Next(i + 1)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Flush returns the unterminated remainder, if any. Called once after the
// process exits so a final record missing its newline is still seen.
func (f *lineFramer) Flush() string {
	line := strings.TrimSpace(f.buf.String())
	f.buf.Reset()
	return line
}
