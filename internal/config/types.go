// types.go
package config

// Raw config loaded from YAML; mirrors the files under the config dir.
type RawConfig struct {
	Version string        `yaml:"version"`
	Roster  RosterConfig  `yaml:"roster"`
	Store   *StoreConfig  `yaml:"store,omitempty"`
	Server  *ServerConfig `yaml:"server,omitempty"`
	Log     *LogConfig    `yaml:"log,omitempty"`
	Notes   string        `yaml:"notes,omitempty"`
}

type RosterConfig struct {
	Players    []string `yaml:"players"`
	UseCurated *bool    `yaml:"use_curated"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // "file" | "sqlite"
	Path   string `yaml:"path"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development *bool  `yaml:"development"`
}

// Settings are the normalized values the rest of the program reads.
type Settings struct {
	Team        string
	Players     []string
	UseCurated  bool
	StoreDriver string
	StorePath   string
	HTTPAddr    string
	GRPCAddr    string
	LogLevel    string
	Development bool
	Version     string // effective config version for tracing
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"

	DefaultStorePath = ".rotation"
	DefaultHTTPAddr  = ":8080"
	DefaultGRPCAddr  = ":9090"
	DefaultLogLevel  = "info"
)
