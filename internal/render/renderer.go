package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/dir-bundler/internal/utils"
	"github.com/bethropolis/dir-bundler/internal/walker"
)

const (
	commentMarker = "// "
	errorPrefix   = commentMarker + "Error reading file: "
	spacing       = "\n\n"
)

var (
	// ErrNotText is the read error for binary or non UTF-8 content
	ErrNotText = errors.New("content is not valid UTF-8 text")
	// ErrTooLarge is the read error for files over the size limit
	ErrTooLarge = errors.New("file exceeds size limit")
)

// Format selects the block envelope
type Format int

const (
	FormatText Format = iota
	FormatMarkdown
)

// ParseFormat accepts "text" (or "") and "markdown"/"md"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatText, fmt.Errorf("render: unknown format %q", s)
	}
}

func (f Format) String() string {
	if f == FormatMarkdown {
		return "markdown"
	}
	return "text"
}

// Renderer reads files and builds blocks
type Renderer struct {
	format      Format
	maxFileSize int64
	logger      utils.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithFormat sets the block envelope
func WithFormat(f Format) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// WithMaxFileSize makes files larger than maxBytes render as read errors
func WithMaxFileSize(maxBytes int64) Option {
	return func(r *Renderer) {
		r.maxFileSize = maxBytes
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(r *Renderer) {
		r.logger = utils.OrNoop(logger)
	}
}

// New creates a text-format Renderer with no size limit
func New(opts ...Option) *Renderer {
	r := &Renderer{
		format: FormatText,
		logger: utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render reads entry and returns its complete block. It never fails: a
// missing file yields a placeholder and an unreadable one an error line.
func (r *Renderer) Render(entry walker.Entry) Block {
	path := utils.NormalizePath(entry.Path)
	block := Block{Path: path, Header: r.header(path)}

	content, err := r.read(entry.AbsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("render: %s not found", path)
		block.Outcome = OutcomeNotFound
		block.Err = err
		block.Body = r.body(placeholderLine(path))
	case err != nil:
		r.logger.Debug("render: %s unreadable: %v", path, err)
		block.Outcome = OutcomeReadError
		block.Err = err
		block.Body = r.body(errorPrefix + err.Error())
	default:
		block.Outcome = OutcomeWritten
		block.Body = r.body(content)
	}
	return block
}

func (r *Renderer) header(path string) string {
	if r.format == FormatMarkdown {
		return "file: " + path + "\n\n"
	}
	return TextHeader(path)
}

func (r *Renderer) body(inner string) string {
	if r.format == FormatMarkdown {
		return "```\n" + inner + "\n```" + spacing
	}
	return inner + spacing
}

// read returns fs.ErrNotExist (wrapped) for anything that is not a regular
// file.
func (r *Renderer) read(absPath string) (string, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file: %w", absPath, fs.ErrNotExist)
	}
	if r.maxFileSize > 0 && info.Size() > r.maxFileSize {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, info.Size(), r.maxFileSize)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	if !isText(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

func isText(data []byte) bool {
	return utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}

func placeholderLine(path string) string {
	return commentMarker + path
}
