package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/nexus-dev/nexus/internal/importer"
	"github.com/nexus-dev/nexus/internal/model"
)

// loadOptions controls how input files are read.
type loadOptions struct {
	format   string    // forced parser format; empty picks by extension
	progress io.Writer // progress bar destination; nil disables it
}

// formatUsage is the --format help text listing the registered parsers.
func formatUsage() string {
	return "input format: " + strings.Join(importer.DefaultRegistry().Formats(), " or ") + " (default by file extension)"
}

// expandPaths replaces each directory argument with the delimited files in it.
func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := importer.Scan(p)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no csv or tsv files in %s", p)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}

// loadRecords parses every input path and concatenates the rows in order.
func loadRecords(paths []string, opts loadOptions, log zerolog.Logger) ([]model.RawRecord, error) {
	files, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}

	registry := importer.DefaultRegistry()
	var all []model.RawRecord
	for _, path := range files {
		format := opts.format
		if format == "" {
			format = importer.FormatFromPath(path)
		}
		parser, err := registry.Lookup(format)
		if err != nil {
			return nil, err
		}

		records, err := parseFile(path, parser, opts.progress)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", path).Str("format", parser.Format()).Int("rows", len(records)).Msg("loaded file")
		all = append(all, records...)
	}
	return all, nil
}

func parseFile(path string, parser importer.Parser, progress io.Writer) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if progress != nil {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Reading "+info.Name()),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	records, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
