package config

const (
	// DefaultFile is the configuration file looked up in the working directory
	DefaultFile = ".kesit.yaml"
	// DefaultOutput is the name of the generated test file
	DefaultOutput = "kesit_test.go"
	// DefaultPattern selects the files scanned for @kesit functions
	DefaultPattern = "*_test.go"
)

// DefaultExclude are the patterns never scanned for tests
var DefaultExclude = []string{
	"vendor/**",
	"node_modules/**",
}
