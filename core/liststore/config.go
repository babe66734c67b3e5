package liststore

// Config holds configuration for list persistence.
type Config struct {
	// Backend is the store used for locators without a scheme (file, s3, db).
	Backend string `mapstructure:"backend" default:"file"`
	// Root is the base directory of the file backend.
	Root string `mapstructure:"root" default:"."`
	// Prefix is the object key prefix of the s3 backend.
	Prefix string `mapstructure:"prefix" default:"assetlists"`
	// AllowAbsolute lets file backend locators be absolute paths. The CLI turns it on;
	// the HTTP server keeps every file below Root.
	AllowAbsolute bool `mapstructure:"allow_absolute" default:"false"`
	// Migrate creates the database tables on startup when the db backend is available.
	Migrate bool `mapstructure:"migrate" default:"true"`
}

// Backend names, also used as locator schemes ("s3://path/to/list.assetlist").
const (
	BackendFile = "file"
	BackendS3   = "s3"
	BackendDB   = "db"
)
