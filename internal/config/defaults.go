package config

const (
	defaultOutputDir       = "~/pictures/organized"
	defaultLogDir          = "~/.local/share/snapsort/logs"
	defaultAlbumsDir       = "~/.local/share/snapsort/albums"
	defaultLayout          = LayoutYear
	defaultPicturesDir     = "pictures"
	defaultMoviesDir       = "movies"
	defaultProcessWorkers  = 8
	defaultExtractWorkers  = 4
	defaultExiftoolBinary  = "exiftool"
	defaultExiftoolTimeout = 60
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			AlbumsDir: defaultAlbumsDir,
		},
		Organize: Organize{
			Layout:      defaultLayout,
			PicturesDir: defaultPicturesDir,
			MoviesDir:   defaultMoviesDir,
		},
		Workers: Workers{
			Process: defaultProcessWorkers,
			Extract: defaultExtractWorkers,
		},
		Exiftool: Exiftool{
			Binary:         defaultExiftoolBinary,
			TimeoutSeconds: defaultExiftoolTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
