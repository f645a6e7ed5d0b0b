package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output verbosity and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// textFlags holds sanitization and token flags.
type textFlags struct {
	noSanitize bool
	whitelist  string
	tokens     string
}

// renderFlags holds all flags of the wikitext command.
type renderFlags struct {
	common        commonFlags
	text          textFlags
	output        string
	attachments   string
	workers       int
	summary       int
	dumpWhitelist bool
	version       bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addTextFlags adds sanitization and token flags to a FlagSet.
func addTextFlags(fs *flag.FlagSet, f *textFlags) {
	fs.BoolVar(&f.noSanitize, "no-sanitize", false, "skip HTML whitelist sanitization")
	fs.StringVar(&f.whitelist, "whitelist", "", "HTML whitelist file (YAML or XML)")
	fs.StringVar(&f.tokens, "tokens", "", "custom token definitions file (YAML)")
}

// parseFlags parses command flags and returns positional args.
// args excludes the program name.
func parseFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("wikitext", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.attachments, "attachments", "", "attachments URL path (default: /attachments/)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.summary, "summary", 0, "print a plain-text summary of at most N characters instead of writing HTML")
	fs.BoolVar(&f.dumpWhitelist, "dump-whitelist", false, "print the effective HTML whitelist as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")

	addCommonFlags(fs, &f.common)
	addTextFlags(fs, &f.text)

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
