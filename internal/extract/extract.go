package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"snapsort/internal/logging"
)

// Unpack extracts the given zip archives into dest, processing archives
// concurrently up to the worker bound.
func Unpack(ctx context.Context, archives []string, dest string, workers int, logger *slog.Logger) error {
	if workers <= 0 {
		workers = 4
	}
	logger = logging.NewComponentLogger(logger, "extract")

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create extraction directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, archive := range archives {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Info("extracting archive", logging.String("archive", filepath.Base(archive)))
			if err := unpackOne(archive, dest); err != nil {
				return fmt.Errorf("extract %s: %w", filepath.Base(archive), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func unpackOne(archive, dest string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := writeEntry(file, dest); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(file *zip.File, dest string) error {
	target := filepath.Join(dest, file.Name)
	// Reject entries escaping the destination root.
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal entry path %q", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
