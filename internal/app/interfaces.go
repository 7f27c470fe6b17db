package app

import (
	"github.com/denizgursoy/kesit/internal/config"
	"github.com/denizgursoy/kesit/internal/generator"
)

type (
	// ParserFactory builds the source parser for a loaded configuration.
	ParserFactory func(cfg *config.Config) generator.SourceParser
)
