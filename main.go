package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"bookdepth/internal/analyze"
	"bookdepth/internal/configcmd"
	"bookdepth/internal/library"
)

const defaultConfigPath = "bookdepth.yaml"

func main() {
	app := &cli.App{
		Name:  "bookdepth",
		Usage: "chapter-by-chapter concept coverage analysis for epub and pdf books",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "scan a folder for books and analyze them",
				Action: analyze.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "folder", Value: ".", Usage: "folder to scan for .epub and .pdf files"},
					&cli.StringFlag{Name: "output-dir", Value: "book-analysis", Usage: "directory for reports, ledger, and cache"},
					&cli.StringFlag{Name: "ledger", Usage: "ledger database path (default: <output-dir>/bookdepth.db)"},
					&cli.StringFlag{Name: "config", Value: defaultConfigPath, Usage: "dictionary config file (built-in defaults when absent)"},
					&cli.StringFlag{Name: "cache-dir", Usage: "decoded-text cache directory (default: <output-dir>/cache)"},
					&cli.IntFlag{Name: "workers", Value: 1, Usage: "number of books analyzed in parallel"},
					&cli.BoolFlag{Name: "force", Usage: "re-analyze books already in the ledger"},
					&cli.BoolFlag{Name: "auto", Usage: "analyze everything new without prompts"},
					&cli.BoolFlag{Name: "no-cache", Usage: "disable the decoded-text cache"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
			},
			{
				Name:   "library",
				Usage:  "list analyzed books, best rating first",
				Action: library.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output-dir", Value: "book-analysis", Usage: "directory holding the ledger and reports"},
					&cli.StringFlag{Name: "ledger", Usage: "ledger database path (default: <output-dir>/bookdepth.db)"},
					&cli.BoolFlag{Name: "write-summary", Usage: "regenerate the master summary markdown"},
					&cli.BoolFlag{Name: "runs", Usage: "also show recent analyze runs"},
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max runs to show"},
				},
			},
			{
				Name:   "init-config",
				Usage:  "write the default dictionary config for editing",
				Action: configcmd.InitAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: defaultConfigPath, Usage: "where to write the config file"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
