package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// FileType identifies the media container detected by exiftool.
type FileType string

const (
	TypeJPEG    FileType = "JPEG"
	TypeHEIC    FileType = "HEIC"
	TypePNG     FileType = "PNG"
	TypeMP4     FileType = "MP4"
	TypeUnknown FileType = ""
)

// ParseFileType maps exiftool's FileType output onto the supported enum.
func ParseFileType(value string) FileType {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "JPEG", "JPG":
		return TypeJPEG
	case "HEIC":
		return TypeHEIC
	case "PNG":
		return TypePNG
	case "MP4":
		return TypeMP4
	default:
		return TypeUnknown
	}
}

// Extension returns the canonical extension for the file type, including the
// leading dot, or an empty string for unknown types.
func (t FileType) Extension() string {
	switch t {
	case TypeJPEG:
		return ".jpg"
	case TypeHEIC:
		return ".heic"
	case TypePNG:
		return ".png"
	case TypeMP4:
		return ".mp4"
	default:
		return ""
	}
}

// Fields carries the date-bearing metadata keys extracted per file.
type Fields struct {
	FileType         string `json:"FileType"`
	DateTimeOriginal string `json:"DateTimeOriginal"`
	CreateDate       string `json:"CreateDate"`
	FileModifyDate   string `json:"FileModifyDate"`
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps exiftool CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an exiftool client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Available reports whether the configured binary can be found on PATH.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// DetectFileType queries exiftool for the real container type of path.
func (c *Client) DetectFileType(ctx context.Context, path string) (FileType, error) {
	output, err := c.run(ctx, "-FileType", "-s3", "--", path)
	if err != nil {
		return TypeUnknown, fmt.Errorf("detect file type: %w", err)
	}
	return ParseFileType(string(output)), nil
}

// ExtractFields queries exiftool for the date-bearing metadata keys of path.
// Exiftool emits a JSON array with one object per input file; a bare object
// is accepted as well.
func (c *Client) ExtractFields(ctx context.Context, path string) (Fields, error) {
	output, err := c.run(ctx, "-json", "-FileType", "-DateTimeOriginal", "-CreateDate", "-FileModifyDate", "--", path)
	if err != nil {
		return Fields{}, fmt.Errorf("extract fields: %w", err)
	}
	return decodeFields(output)
}

// WriteTimestamps sets the capture and modification times of path in a single
// combined write. A nonzero exit is a hard error for the file.
func (c *Client) WriteTimestamps(ctx context.Context, path string, t time.Time) error {
	stamp := t.Format("2006:01:02 15:04:05")
	_, err := c.run(ctx,
		"-overwrite_original",
		"-AllDates="+stamp,
		"-FileModifyDate="+stamp,
		"--", path,
	)
	if err != nil {
		return fmt.Errorf("write timestamps: %w", err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, c.binary, args)
}

func decodeFields(output []byte) (Fields, error) {
	trimmed := bytes.TrimSpace(output)
	if len(trimmed) == 0 {
		return Fields{}, errors.New("exiftool returned empty output")
	}

	if trimmed[0] == '[' {
		var rows []Fields
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return Fields{}, fmt.Errorf("parse exiftool output: %w", err)
		}
		if len(rows) == 0 {
			return Fields{}, errors.New("exiftool returned no records")
		}
		return rows[0], nil
	}

	var fields Fields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Fields{}, fmt.Errorf("parse exiftool output: %w", err)
	}
	return fields, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail != "" {
			return nil, fmt.Errorf("%w: %s", err, detail)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
