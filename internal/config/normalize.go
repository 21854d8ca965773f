package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOrganize()
	c.normalizeWorkers()
	c.normalizeExiftool()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.AlbumsDir, err = expandPath(c.Paths.AlbumsDir); err != nil {
		return fmt.Errorf("paths.albums_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AlbumNamesFile) != "" {
		if c.Paths.AlbumNamesFile, err = expandPath(c.Paths.AlbumNamesFile); err != nil {
			return fmt.Errorf("paths.album_names_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeOrganize() {
	c.Organize.Layout = strings.ToLower(strings.TrimSpace(c.Organize.Layout))
	if c.Organize.Layout == "" {
		c.Organize.Layout = defaultLayout
	}
	if strings.TrimSpace(c.Organize.PicturesDir) == "" {
		c.Organize.PicturesDir = defaultPicturesDir
	}
	if strings.TrimSpace(c.Organize.MoviesDir) == "" {
		c.Organize.MoviesDir = defaultMoviesDir
	}
}

func (c *Config) normalizeWorkers() {
	if c.Workers.Process <= 0 {
		c.Workers.Process = defaultProcessWorkers
	}
	if c.Workers.Extract <= 0 {
		c.Workers.Extract = defaultExtractWorkers
	}
}

func (c *Config) normalizeExiftool() {
	c.Exiftool.Binary = strings.TrimSpace(c.Exiftool.Binary)
	if c.Exiftool.Binary == "" {
		c.Exiftool.Binary = defaultExiftoolBinary
	}
	if c.Exiftool.TimeoutSeconds <= 0 {
		c.Exiftool.TimeoutSeconds = defaultExiftoolTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
