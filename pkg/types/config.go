package types

// BackupConfig holds settings for pre-transform backup files.
type BackupConfig struct {
	// Enabled controls whether a backup copy is written before a file
	// is rewritten (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Suffix is appended to the original path to name the backup
	// (default ".bak").
	Suffix string `json:"suffix" yaml:"suffix"`
}

// HistoryConfig holds settings for the run-history ledger.
type HistoryConfig struct {
	// Enabled controls whether each run is recorded (default false).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file holding recorded runs
	// (default ~/.local/share/quotefmt/history.db).
	Path string `json:"path" yaml:"path"`
}

// Config groups all quotefmt settings.
type Config struct {
	Backup  BackupConfig  `json:"backup" yaml:"backup"`
	History HistoryConfig `json:"history" yaml:"history"`
}
