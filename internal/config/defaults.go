package config

const (
	defaultLogDir            = "~/.local/share/nox/logs"
	defaultHistoryDB         = "~/.local/share/nox/history.db"
	defaultTemplate          = "{entity}_{task}_v{version:3}.{ext}"
	defaultBackupMaxCount    = 5
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultShotGridURL       = ""
	defaultShotGridScript    = "nox_file_manager"
	defaultShotGridProjectID = 0
)

// Default returns the repository defaults applied before a config file is
// read.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Naming: Naming{
			Template: defaultTemplate,
		},
		Backup: Backup{
			Enabled:      true,
			MaxCount:     defaultBackupMaxCount,
			FatalOnError: true,
		},
		ShotGrid: ShotGrid{
			URL:        defaultShotGridURL,
			ScriptName: defaultShotGridScript,
			ProjectID:  defaultShotGridProjectID,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
