// Command ctypectx builds a type map from an already-parsed C translation
// unit and reports it.
//
// Usage:
//
//	ctypectx dump [options] <ast.json>
//	cat ast.json | ctypectx dump [options]
//
// ctypectx never parses C source text itself (spec.md §6 places that
// out of scope); <ast.json> is the JSON AST encoding internal/astjson
// decodes, produced by whatever C parser the caller already has.
//
// Options:
//
//	-o <file>         Write output to file (default: stdout)
//	--format <name>   "text" (default) or "json"
//	--config <file>   Use a specific config file
//	--no-config       Ignore config files
//	-v, --verbose     Log preprocessing steps to stderr
//
// Config file:
//
//	ctypectx looks for ctypectx.json or .ctypectxrc in the input file's
//	directory (the current directory when reading stdin) and its parent
//	directories. Config file options are overridden by CLI flags.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"

	"codeberg.org/saruga/ctypectx/internal/astjson"
	"codeberg.org/saruga/ctypectx/internal/config"
	"codeberg.org/saruga/ctypectx/internal/cprep"
	"codeberg.org/saruga/ctypectx/internal/logging"
	"codeberg.org/saruga/ctypectx/internal/typemap"
	"codeberg.org/saruga/ctypectx/pkg/api"
)

var version = "0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "ctypectx",
		Usage:   "build and report a C type map from an already-parsed translation unit",
		Version: version,
		Commands: []*cli.Command{
			dumpCommand,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "decode an AST JSON document, build its type map, and print it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write output to `file` instead of stdout",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "",
			Usage: "\"text\" or \"json\" (overrides config)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "use a specific config `file`",
		},
		&cli.BoolFlag{
			Name:  "no-config",
			Usage: "ignore config files",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log preprocessing steps to stderr",
		},
	},
	Action: runDump,
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	log := logging.Logger(os.Stderr, level)

	raw, path, err := readInput(cmd)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts, err := loadOptions(cmd, path)
	if err != nil {
		return err
	}

	source := string(raw)
	if opts.AddBuiltinTypedefs {
		source = cprep.AddBuiltinTypedefs(source)
		log.Debug("added builtin typedefs")
	}
	if opts.StripComments {
		source = cprep.StripComments(source)
		log.Debug("stripped comments")
	}

	unit, err := astjson.DecodeTranslationUnit([]byte(source))
	if err != nil {
		return fmt.Errorf("decoding AST: %w", err)
	}

	tm, err := typemap.Build(unit)
	if err != nil {
		return err
	}
	log.Debug("built type map",
		"variables", len(tm.VarTypes),
		"functions", len(tm.Functions),
		"structs", len(tm.NamedStructs),
	)

	out, closeOut, err := openOutput(cmd.String("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	switch opts.Format {
	case "json":
		return dumpJSON(out, tm)
	default:
		return api.Dump(out, tm)
	}
}

func readInput(cmd *cli.Command) (data []byte, sourceDir string, err error) {
	if cmd.Args().Len() > 0 {
		p := cmd.Args().First()
		data, err := os.ReadFile(p)
		return data, filepath.Dir(p), err
	}
	data, err = io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", err
	}
	wd, _ := os.Getwd()
	return data, wd, nil
}

func loadOptions(cmd *cli.Command, sourceDir string) (config.Options, error) {
	var cfg *config.Config
	var err error

	if !cmd.Bool("no-config") {
		if path := cmd.String("config"); path != "" {
			cfg, err = config.LoadFile(path)
		} else {
			cfg, _, err = config.Load(sourceDir)
		}
		if err != nil {
			return config.Options{}, fmt.Errorf("loading config: %w", err)
		}
	}

	var cliOpts config.CLIOptions
	if format := cmd.String("format"); format != "" {
		cliOpts.Format = &format
	}

	return cfg.Merge(cliOpts), nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

type jsonField struct {
	Offset int    `json:"offset"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

type jsonStruct struct {
	Size   int         `json:"size"`
	Align  int         `json:"align"`
	Fields []jsonField `json:"fields"`
}

type jsonFunction struct {
	Return   string   `json:"return"`
	Params   []string `json:"params,omitempty"`
	Variadic bool     `json:"variadic"`
	Unknown  bool     `json:"unknownArity"`
}

func dumpJSON(w io.Writer, tm *api.TypeMap) error {
	variables := make(map[string]string, len(tm.VarTypes))
	for name, t := range tm.VarTypes {
		variables[name] = api.TypeString(t)
	}

	functions := make(map[string]jsonFunction, len(tm.Functions))
	for name, fn := range tm.Functions {
		jf := jsonFunction{Return: "void", Variadic: fn.Variadic, Unknown: fn.Params == nil}
		if fn.RetType != nil {
			jf.Return = api.TypeString(fn.RetType)
		}
		for _, p := range fn.Params {
			jf.Params = append(jf.Params, api.TypeString(p.Type))
		}
		functions[name] = jf
	}

	structs := make(map[string]jsonStruct, len(tm.NamedStructs))
	for name, s := range tm.NamedStructs {
		js := jsonStruct{Size: s.Size, Align: s.Align}
		offsets := make([]int, 0, len(s.Fields))
		for offset := range s.Fields {
			offsets = append(offsets, offset)
		}
		sort.Ints(offsets)
		for _, offset := range offsets {
			for _, f := range s.Fields[offset] {
				js.Fields = append(js.Fields, jsonField{Offset: offset, Name: f.Name, Type: api.TypeString(f.Type)})
			}
		}
		structs[name] = js
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"variables": variables,
		"functions": functions,
		"structs":   structs,
	})
}
