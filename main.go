package main

import (
	stderrors "errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/she/config"
	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/interp"
	"github.com/pontaoski/she/lexer"
	"github.com/pontaoski/she/parser"
	"github.com/pontaoski/she/shell"
	"github.com/pontaoski/she/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/she", "main")

// settings is the configuration after command line overrides.
var settings = config.Default()

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("max-depth") {
		cfg.MaxCallDepth = c.Int("max-depth")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, false))
	lvl, err := capnslog.ParseLevel(strings.ToUpper(cfg.LogLevel))
	if err != nil {
		return tracerr.Errorf("bad log level %q: %v", cfg.LogLevel, err)
	}
	capnslog.SetGlobalLogLevel(lvl)

	settings = cfg
	plog.Debugf("settings: %+v", settings)
	return nil
}

func readSource(file string) (string, error) {
	if file == "" {
		return "", tracerr.New("no file provided")
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func tokenize(file string) ([]types.Token, error) {
	text, err := readSource(file)
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(file, text)
}

func historyPath() string {
	if settings.HistoryFile == "" || filepath.IsAbs(settings.HistoryFile) {
		return settings.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return settings.HistoryFile
	}
	return filepath.Join(home, settings.HistoryFile)
}

func repl(c *cli.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := historyPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				plog.Warningf("saving history: %v", err)
				return
			}
			defer f.Close()
			ln.WriteHistory(f)
		}()
	}

	in := interp.New(
		interp.WithMaxDepth(settings.MaxCallDepth),
		interp.WithLineReader(func() (string, error) { return ln.Prompt("") }),
	)
	return shell.New(in, settings.Prompt, os.Stdout, os.Stderr).Loop(ln)
}

func main() {
	app := &cli.App{
		Name:  "she",
		Usage: "she language interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.FileName,
				Usage: "configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (DEBUG, INFO, WARNING, ERROR)",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "maximum call depth, 0 for unbounded",
			},
		},
		Before: setup,
		Action: repl,
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			var e *errors.Error
			if stderrors.As(err, &e) {
				fmt.Fprintln(os.Stderr, e.Render())
			} else {
				tracerr.PrintSourceColor(err)
			}
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "start the interactive shell",
				Action: repl,
			},
			{
				Name:      "run",
				Usage:     "run a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					file := c.Args().First()
					text, err := readSource(file)
					if err != nil {
						return err
					}

					in := interp.New(interp.WithMaxDepth(settings.MaxCallDepth))
					return in.Run(in.Globals(), file, text)
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					toks, err := tokenize(c.Args().First())
					if err != nil {
						return err
					}
					repr.Println(toks)
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					toks, err := tokenize(c.Args().First())
					if err != nil {
						return err
					}
					root, err := parser.Parse(toks)
					if err != nil {
						return err
					}

					if c.Bool("raw") {
						repr.Println(root)
						return nil
					}
					for _, stmt := range root.Elements {
						fmt.Println(stmt)
					}
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "write a default " + config.FileName,
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if _, err := os.Stat(path); err == nil {
						return tracerr.Errorf("%s already exists", path)
					}
					return config.Default().Save(path)
				},
			},
		},
	}

	app.Run(os.Args)
}
