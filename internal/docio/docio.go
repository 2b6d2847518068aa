// Package docio loads and saves documents on disk and in memory around the
// codec. It is the only package that touches file paths.
package docio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docpad/internal/codec"
	"github.com/dgallion1/docpad/internal/doctree"
	"github.com/dgallion1/docpad/internal/parser"
	"github.com/dgallion1/docpad/internal/writer"
)

// DefaultMaxFileSize bounds the files Open, Preview and Import will read.
const DefaultMaxFileSize = 100 << 20

// FallbackNote is appended to text recovered by plain extraction.
const FallbackNote = "\n\n[Note: Using basic extraction due to error]"

// Outcome describes how a document was decoded.
type Outcome string

const (
	OutcomeFull          Outcome = "full"
	OutcomePlainFallback Outcome = "plain_fallback"
)

// Loaded is the result of opening a file for editing.
type Loaded struct {
	Outcome Outcome
	Text    string
	// Document is set for structured formats decoded in full.
	Document *doctree.Document
	// Charset names the detected encoding of text files.
	Charset string
	// Cause holds the structured decoding error behind a plain fallback.
	Cause error
}

// textExtensions are opened and saved as raw text.
var textExtensions = map[string]bool{
	".txt":      true,
	".py":       true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".csv":      true,
}

// IsTextExtension reports whether files with this name are edited as raw text.
func IsTextExtension(filename string) bool {
	return textExtensions[parser.Ext(filename)]
}

// CanOpen reports whether Open and DecodeBytes accept files with this name.
func CanOpen(filename string) bool {
	ext := parser.Ext(filename)
	return ext == ".docx" || ext == ".pdf" || textExtensions[ext]
}

// Options configures a Service.
type Options struct {
	MaxFileSize          int64
	PDFFallbackPdftotext bool
}

// Service loads, saves and converts documents.
type Service struct {
	log         *slog.Logger
	parsers     parser.Options
	maxFileSize int64
}

// New creates a Service. A non-positive MaxFileSize uses DefaultMaxFileSize.
func New(log *slog.Logger, opts Options) *Service {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &Service{
		log:         log.With("component", "docio"),
		parsers:     parser.Options{PDFFallbackPdftotext: opts.PDFFallbackPdftotext},
		maxFileSize: opts.MaxFileSize,
	}
}

// Open reads a file and returns its annotated text.
func (s *Service) Open(ctx context.Context, path string) (*Loaded, error) {
	if !CanOpen(path) {
		return nil, unsupported(parser.Ext(path))
	}
	data, err := s.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.DecodeBytes(ctx, path, data)
}

// DecodeBytes decodes file contents named by filename. A .docx that fails
// structured decoding falls back to plain paragraph extraction.
func (s *Service) DecodeBytes(ctx context.Context, filename string, data []byte) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := parser.Ext(filename)
	log := s.log.With("file", filename, "bytes", len(data))

	switch {
	case ext == ".docx":
		doc, err := parser.ParseDOCX(data)
		if err == nil {
			log.Debug("decoded document", "outcome", OutcomeFull)
			return &Loaded{Outcome: OutcomeFull, Text: codec.Decode(doc), Document: doc}, nil
		}
		log.Warn("structured decode failed, using plain extraction", "error", err)
		text, ferr := parser.ExtractDOCXText(data)
		if ferr != nil {
			return nil, &DecodeFailure{Path: filename, Err: errors.Join(err, ferr)}
		}
		return &Loaded{Outcome: OutcomePlainFallback, Text: text + FallbackNote, Cause: err}, nil

	case ext == ".pdf":
		doc, err := s.parse(filename, data)
		if err != nil {
			return nil, err
		}
		log.Debug("decoded document", "outcome", OutcomeFull)
		return &Loaded{Outcome: OutcomeFull, Text: codec.Decode(doc), Document: doc}, nil

	case textExtensions[ext]:
		text, charset, err := decodeText(data)
		if err != nil {
			return nil, &DecodeFailure{Path: filename, Err: err}
		}
		log.Debug("decoded text", "charset", charset)
		return &Loaded{Outcome: OutcomeFull, Text: text, Charset: charset}, nil
	}
	return nil, unsupported(ext)
}

// Save writes edited text to path. A .docx is rebuilt from the annotated
// text; text formats are written verbatim.
func (s *Service) Save(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ext := parser.Ext(path)
	switch {
	case ext == ".docx":
		doc := encodeText(text)
		err := writeFileAtomic(path, func(w io.Writer) error {
			return (&writer.DOCXWriter{}).Write(w, doc)
		})
		if err != nil {
			return &EncodeFailure{Path: path, Err: err}
		}
	case textExtensions[ext]:
		err := writeFileAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, text)
			return err
		})
		if err != nil {
			return &EncodeFailure{Path: path, Err: err}
		}
	default:
		return unsupported(ext)
	}
	s.log.Debug("saved document", "file", path, "bytes", len(text))
	return nil
}

// EncodeBytes builds a .docx from annotated text.
func (s *Service) EncodeBytes(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := (&writer.DOCXWriter{}).Write(&buf, encodeText(text)); err != nil {
		return nil, &EncodeFailure{Path: "(memory)", Err: err}
	}
	return buf.Bytes(), nil
}

// encodeText parses annotated text with CRLF line endings folded to LF, so
// text edited on Windows does not leave a trailing \r in every run.
func encodeText(text string) *doctree.Document {
	return codec.Encode(strings.ReplaceAll(text, "\r\n", "\n"))
}

// Preview summarizes a file without opening it for editing.
func (s *Service) Preview(ctx context.Context, path string) (codec.Summary, error) {
	if err := s.checkParsable(path); err != nil {
		return codec.Summary{}, err
	}
	data, err := s.readFile(ctx, path)
	if err != nil {
		return codec.Summary{}, err
	}
	return s.ProfileBytes(ctx, path, data)
}

// ProfileBytes summarizes file contents named by filename.
func (s *Service) ProfileBytes(ctx context.Context, filename string, data []byte) (codec.Summary, error) {
	if err := ctx.Err(); err != nil {
		return codec.Summary{}, err
	}
	doc, err := s.parse(filename, data)
	if err != nil {
		return codec.Summary{}, err
	}
	return codec.Profile(doc), nil
}

// Import reads any supported file into a structured Document.
func (s *Service) Import(ctx context.Context, path string) (*doctree.Document, error) {
	if err := s.checkParsable(path); err != nil {
		return nil, err
	}
	data, err := s.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.parse(path, data)
}

// Convert imports src and writes it to dst in the format named by dst's extension.
func (s *Service) Convert(ctx context.Context, src, dst string) error {
	w, err := writer.ForFile(dst)
	if err != nil {
		return unsupported(parser.Ext(dst))
	}
	doc, err := s.Import(ctx, src)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(dst, func(out io.Writer) error { return w.Write(out, doc) }); err != nil {
		return &EncodeFailure{Path: dst, Err: err}
	}
	s.log.Info("converted document", "src", src, "dst", dst, "blocks", len(doc.Blocks))
	return nil
}

func (s *Service) checkParsable(path string) error {
	if !parser.IsSupportedExtension(path) {
		return unsupported(parser.Ext(path))
	}
	return nil
}

// parse runs the structured parser for filename. Text formats are charset
// decoded first.
func (s *Service) parse(filename string, data []byte) (*doctree.Document, error) {
	p, err := s.parsers.ForFile(filename)
	if err != nil {
		return nil, unsupported(parser.Ext(filename))
	}
	var r io.Reader = bytes.NewReader(data)
	if textExtensions[parser.Ext(filename)] {
		text, _, err := decodeText(data)
		if err != nil {
			return nil, &DecodeFailure{Path: filename, Err: err}
		}
		r = strings.NewReader(text)
	}
	doc, err := p.Parse(r, filepath.Base(filename))
	if err != nil {
		return nil, &DecodeFailure{Path: filename, Err: err}
	}
	return doc, nil
}

func (s *Service) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &DecodeFailure{Path: path, Err: err}
	}
	if info.Size() > s.maxFileSize {
		return nil, &DecodeFailure{
			Path: path,
			Err:  fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, info.Size(), s.maxFileSize),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeFailure{Path: path, Err: err}
	}
	s.log.Debug("read file", "file", path, "bytes", len(data))
	return data, nil
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
