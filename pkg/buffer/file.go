package buffer

import (
	"os"
	"strings"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

const osWriteFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC

// Load reads path from fs into a new TextBuffer
func Load(fs afero.Fs, path string) (*TextBuffer, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return NewTextBuffer(string(data)), nil
}

// Save writes the buffer to path. A non-empty eol rewrites every line terminator.
func Save(fs afero.Fs, path string, b *TextBuffer, eol string) (err error) {
	text := b.String()
	if eol != "" {
		text = NormalizeEOL(text, eol)
	}

	f, err := fs.OpenFile(path, osWriteFlags, 0o644)
	if err != nil {
		return errors.Errorf("opening %s for writing: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.WriteString(text); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// NormalizeEOL rewrites every line terminator in text to eol
func NormalizeEOL(text, eol string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if eol == "\n" {
		return text
	}
	return strings.ReplaceAll(text, "\n", eol)
}
