package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/vbalien/textrank/keywords"
	"github.com/vbalien/textrank/tagged"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"

	stdinSource = "-"
)

const (
	flagTop         = "top"
	flagWindow      = "window"
	flagFormat      = "format"
	flagConcurrency = "concurrency"
)

// document is the output record for one input source.
type document struct {
	Source   string             `json:"source" yaml:"source"`
	Keywords []keywords.Keyword `json:"keywords" yaml:"keywords"`
}

func (a *app) extractCmd() *urfave.Command {
	return &urfave.Command{
		Name:      "extract",
		Usage:     "Rank keywords of tagged text files, or stdin when no file is given",
		ArgsUsage: "[file...]",
		Flags: []urfave.Flag{
			&urfave.IntFlag{
				Name:    flagTop,
				Aliases: []string{"n"},
				Usage:   "Number of keywords per document (default: config top_n)",
			},
			&urfave.IntFlag{
				Name:    flagWindow,
				Aliases: []string{"w"},
				Usage:   "Co-occurrence window size (default: config window_size)",
			},
			&urfave.StringFlag{
				Name:  flagFormat,
				Usage: "Output format [json, yaml, text]",
				Value: formatJSON,
			},
			&urfave.IntFlag{
				Name:  flagConcurrency,
				Usage: "Documents ranked in parallel, 0 for one per CPU",
			},
		},
		Action: a.cmdExtract,
	}
}

func (a *app) cmdExtract(ctx context.Context, cmd *urfave.Command) error {
	format := strings.ToLower(cmd.String(flagFormat))
	if format == "yml" {
		format = formatYAML
	}
	switch format {
	case formatJSON, formatYAML, formatText:
	default:
		return errors.Errorf("unsupported format: %s", format)
	}

	top := a.cfg.TopN
	if cmd.IsSet(flagTop) {
		top = cmd.Int(flagTop)
	}

	var extra []keywords.Option
	if cmd.IsSet(flagWindow) {
		w := cmd.Int(flagWindow)
		if w < 1 {
			return errors.Errorf("window must be at least 1, got %d", w)
		}
		extra = append(extra, keywords.WithWindowSize(w))
	}

	sources := cmd.Args().Slice()
	docs, err := readDocuments(cmd.Root().Reader, sources)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	results, err := a.extractor(extra...).ExtractBatch(ctx, docs, top, cmd.Int(flagConcurrency))
	if err != nil {
		return errors.Wrap(err, "extracting keywords")
	}

	out := make([]document, len(results))
	for i, kws := range results {
		if kws == nil {
			kws = []keywords.Keyword{}
		}
		out[i] = document{Source: sources[i], Keywords: kws}
		a.logger.Debug("extracted", "source", sources[i], "tokens", len(docs[i]), "keywords", len(kws))
	}

	return writeDocuments(cmd.Root().Writer, format, out)
}

// readDocuments parses every file in paths, or in when paths is empty.
func readDocuments(in io.Reader, paths []string) ([][]keywords.Token, error) {
	if len(paths) == 0 {
		toks, err := tagged.ParseLines(in)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		return [][]keywords.Token{toks}, nil
	}

	docs := make([][]keywords.Token, len(paths))
	for i, p := range paths {
		toks, err := readFile(p)
		if err != nil {
			return nil, err
		}
		docs[i] = toks
	}
	return docs, nil
}

func readFile(path string) ([]keywords.Token, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer func() { _ = f.Close() }()

	toks, err := tagged.ParseLines(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return toks, nil
}

func writeDocuments(w io.Writer, format string, docs []document) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		for _, d := range docs {
			if _, err := fmt.Fprintln(w, d.Source); err != nil {
				return err
			}
			for _, kw := range d.Keywords {
				if _, err := fmt.Fprintf(w, "  %s\t%.4f\n", kw.Surface, kw.Score); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}
}
