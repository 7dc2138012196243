package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the optional project configuration file.
	ConfigFile = "sqlfixture.yaml"

	// FixtureExt is the extension of fixture files found when walking directories.
	FixtureExt = ".sqltest"

	// DefaultFixtureGlob is used when neither arguments nor config name any fixtures.
	DefaultFixtureGlob = "testdata/*.sqltest"

	// DefaultClickHouseVersion is the image tag used for docker-backed validation.
	DefaultClickHouseVersion = "25.7"
)
