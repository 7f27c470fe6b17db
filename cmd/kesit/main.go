package main

import (
	"context"
	"os"

	"github.com/denizgursoy/kesit/internal/app"
	"github.com/denizgursoy/kesit/internal/comment_parser"
	"github.com/denizgursoy/kesit/internal/config"
	"github.com/denizgursoy/kesit/internal/generator"
)

func main() {
	newParser := func(cfg *config.Config) generator.SourceParser {
		return comment_parser.NewGoSourceFileParser(
			comment_parser.WithGeneratedFile(cfg.Output),
			comment_parser.WithExclude(cfg.Exclude...),
		)
	}

	err := app.StartApplication(context.Background(), newParser, os.Args[1:], os.Stdout)
	if err != nil {
		os.Exit(1)
	}
}
