package database

// Config holds configuration for the database connection.
type Config struct {
	// Enabled turns the db list backend on. The connection is optional otherwise.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"asset_lists"`
	// TimeoutSeconds bounds connection setup and individual reads and writes.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Supported drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
