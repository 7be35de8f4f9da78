package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// CatalogConfig selects where schedule/track/ticket snapshots come from.
// Source is "mysql" for the live CRUD store or "zip" for an offline
// snapshot archive.
type CatalogConfig struct {
	Source  string `yaml:"source" validate:"omitempty,oneof=mysql zip"`
	ZipPath string `yaml:"zipPath" validate:"omitempty"`
}

// DatabaseConfig contains MySQL connection settings. Credentials come from
// the environment (DB_USER/DB_PASS), never from the config file.
type DatabaseConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Name string `yaml:"name"`
}

// TimelineConfig tunes the day-rollover reconstruction.
type TimelineConfig struct {
	// BackwardJumpThresholdMinutes is the forward delta beyond which a time
	// jump is read as a backward crossing of midnight rather than a long
	// dwell. The upstream data never carries dates, so this stays a
	// heuristic; it is configurable rather than a buried constant.
	BackwardJumpThresholdMinutes int `yaml:"backwardJumpThresholdMinutes" validate:"gte=0,lte=1440"`
}

// InventoryConfig tunes seat hold lifetimes.
type InventoryConfig struct {
	HoldTTLSeconds       int `yaml:"holdTTLSeconds" validate:"gte=0"`
	SweepIntervalSeconds int `yaml:"sweepIntervalSeconds" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server" validate:"required"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Database  DatabaseConfig  `yaml:"database"`
	Timeline  TimelineConfig  `yaml:"timeline"`
	Inventory InventoryConfig `yaml:"inventory"`
}
