// Command swiftcsv re-encodes a delimited file between dialects,
// optionally inferring the input dialect instead of naming it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/csvkit/swiftcsv"
	"github.com/csvkit/swiftcsv/decode"
)

type options struct {
	Input        string `short:"i" long:"input" description:"input file (defaults to stdin)"`
	Output       string `short:"o" long:"output" description:"output file (defaults to stdout)"`
	Profile      string `short:"p" long:"profile" description:"named dialect profile for the input (see --list-profiles)"`
	ProfileFile  string `long:"profile-file" description:"YAML file of custom profiles, merged over the standard set"`
	OutProfile   string `long:"out-profile" default:"csv" description:"named dialect profile for the output"`
	Infer        bool   `long:"infer" description:"infer the input dialect instead of using --profile"`
	Header       bool   `long:"header" description:"treat the first input row as a header"`
	ListProfiles bool   `long:"list-profiles" description:"print the known profile names and exit"`
	Verbose      bool   `short:"v" long:"verbose" description:"log inference decisions to stderr"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "swiftcsv:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return errors.Wrap(err, "parsing arguments")
	}

	profiles, err := loadProfiles(opts.ProfileFile)
	if err != nil {
		return err
	}

	if opts.ListProfiles {
		for _, p := range profiles.Profiles {
			fmt.Println(p.Name)
		}
		return nil
	}

	in, closeIn, err := openInput(opts.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	cfg, err := readerConfig(opts, profiles)
	if err != nil {
		return err
	}

	src, err := decode.Source(in)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}

	reader, err := swiftcsv.NewReader(src, cfg)
	if err != nil {
		return errors.Wrap(err, "constructing reader")
	}

	outProfile, err := profiles.Lookup(opts.OutProfile)
	if err != nil {
		return err
	}
	wcfg, err := outProfile.WriterConfig()
	if err != nil {
		return err
	}
	writer := swiftcsv.NewWriter(out, wcfg)

	if reader.Header() != nil {
		if err := writer.WriteRow(reader.Header()); err != nil {
			return errors.Wrap(err, "writing header")
		}
	}

	for row, err := range reader.Rows() {
		if err != nil {
			return errors.Wrap(err, "reading row")
		}
		if err := writer.WriteRow(row); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}

	return writer.EndFile()
}

func loadProfiles(path string) (swiftcsv.ProfileSet, error) {
	standard := swiftcsv.StandardProfiles()
	if path == "" {
		return standard, nil
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return swiftcsv.ProfileSet{}, errors.Wrap(err, "reading profile file")
	}
	custom, err := swiftcsv.ParseProfileSet(doc)
	if err != nil {
		return swiftcsv.ProfileSet{}, err
	}

	merged := standard
	merged.Profiles = append(append([]swiftcsv.Profile(nil), custom.Profiles...), standard.Profiles...)
	return merged, nil
}

func readerConfig(opts options, profiles swiftcsv.ProfileSet) (swiftcsv.Config, error) {
	header := swiftcsv.HeaderNone
	if opts.Header {
		header = swiftcsv.HeaderFirstLine
	}

	if opts.Infer {
		cfg := swiftcsv.Config{
			FieldDelimiter: swiftcsv.InferFieldDelimiter(),
			RowDelimiter:   swiftcsv.InferRowDelimiter(),
			Escape:         swiftcsv.DoubleQuoteEscape(),
			Header:         header,
		}
		if opts.Verbose {
			log := logrus.StandardLogger()
			log.SetLevel(logrus.DebugLevel)
			cfg.Logger = swiftcsv.NewLogrusInferenceLogger(log)
		}
		return cfg, nil
	}

	name := opts.Profile
	if name == "" {
		name = "csv"
	}
	profile, err := profiles.Lookup(name)
	if err != nil {
		return swiftcsv.Config{}, err
	}
	cfg, err := profile.Config()
	if err != nil {
		return swiftcsv.Config{}, err
	}
	cfg.Header = header
	return cfg, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening input file")
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating output file")
	}
	return f, func() { f.Close() }, nil
}
