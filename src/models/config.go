package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	Storage  MStorageConfig `yaml:"storage"`
	Network  MNetworkConfig `yaml:"network"`
	Dataset  MDatasetConfig `yaml:"dataset"`
	Audit    MAuditConfig   `yaml:"audit"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}

type MDatasetConfig struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"` // Optional remote source; takes priority when set
	// Seconds between mtime checks for hot reload; 0 disables reloading.
	ReloadIntervalSeconds int `yaml:"reload_interval_seconds"`
	// Days the dataset is assumed to span, used for the coverage baseline.
	BaselineWindowDays int `yaml:"baseline_window_days"`
}

type MAuditConfig struct {
	RetentionDays int `yaml:"retention_days"`
	// Number of recent entries kept in memory for the live feed snapshot.
	BufferSize int `yaml:"buffer_size"`
}
