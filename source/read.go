// Package source locates ADIF log given on the command line and turns it into
// UTF-8 text. Log could be a plain file or a file inside zip archive
// ("logs.zip/2024/field-day.adi").
package source

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"adifc/archive"
)

// ErrNotFound is returned when source path does not point to a log.
var ErrNotFound = errors.New("input source was not found")

// Input is decoded log content.
type Input struct {
	// Path is the original source path, Name is base name of the log file
	// (inside archive when log came from one).
	Path string
	Name string
	// Raw is the undecoded content.
	Raw  []byte
	Text string
	// Charset is name of the encoding content was decoded from.
	Charset string
}

// Read finds the log and decodes it. When cp is not nil it is used for
// content without byte order mark and for non UTF-8 names in archives.
func Read(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) (*Input, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.Mode().IsDir() {
			return nil, fmt.Errorf("%w (%s) => (%s)", ErrNotFound, head, strings.TrimPrefix(src, head))
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return readArchive(ctx, head, filepath.ToSlash(tail), cp, log)
		}
		if len(tail) != 0 {
			// plain file cannot have tail
			break
		}

		data, err := os.ReadFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to read log: %w", err)
		}
		in, err := decode(data, cp, log)
		if err != nil {
			return nil, fmt.Errorf("unable to decode log (%s): %w", head, err)
		}
		in.Path, in.Name = src, filepath.Base(head)
		if !isLogText(in.Text) {
			log.Warn("File does not look like ADIF log, processing anyway", zap.String("file", head))
		}
		return in, nil
	}
	return nil, fmt.Errorf("%w (%s)", ErrNotFound, src)
}

// readArchive picks the first log under pathIn. Files with log extensions are
// preferred, otherwise first entry with recognizable content is taken.
func readArchive(ctx context.Context, arc, pathIn string, cp encoding.Encoding, log *zap.Logger) (*Input, error) {
	var byName, byContent *Input

	err := archive.Walk(arc, archive.Under(pathIn), func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := archive.ReadFile(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		in, err := decode(data, cp, log)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if !isLogText(in.Text) {
			log.Debug("Skipping file, not recognized as log", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}

		name := f.Name
		if cp != nil && f.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(name); err == nil {
				name = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", name), zap.Error(err))
			}
		}
		in.Path, in.Name = filepath.Join(arc, filepath.FromSlash(name)), path.Base(name)

		if isLogName(name) {
			byName = in
			return archive.ErrStop
		}
		if byContent == nil {
			byContent = in
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process archive: %w", err)
	}

	switch {
	case byName != nil:
		return byName, nil
	case byContent != nil:
		return byContent, nil
	}
	return nil, fmt.Errorf("%w in archive (%s) => (%s)", ErrNotFound, arc, pathIn)
}

// decode converts log content to UTF-8. Byte order mark wins, then forced
// code page, then content is either valid UTF-8 or its charset is guessed.
func decode(data []byte, cp encoding.Encoding, log *zap.Logger) (*Input, error) {
	in := &Input{Raw: data}

	if enc := detectUTF(data); enc != encUnknown {
		text, err := io.ReadAll(selectReader(bytes.NewReader(data), enc))
		if err != nil {
			return nil, err
		}
		in.Text, in.Charset = string(text), enc.String()
		return in, nil
	}

	if cp != nil {
		text, err := cp.NewDecoder().Bytes(data)
		if err != nil {
			return nil, err
		}
		in.Text = string(text)
		in.Charset, _ = ianaindex.IANA.Name(cp)
		return in, nil
	}

	if utf8.Valid(data) {
		in.Text, in.Charset = string(data), "UTF-8"
		return in, nil
	}

	enc, name, _ := charset.DetermineEncoding(data, "text/plain")
	log.Debug("Log is not valid UTF-8, guessing code page", zap.String("charset", name))
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	in.Text, in.Charset = string(text), name
	return in, nil
}

// CodePage resolves IANA name of the forced code page, empty name means
// detection.
func CodePage(name string) (encoding.Encoding, error) {
	if len(name) == 0 {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported character set %q", name)
	}
	return enc, nil
}
