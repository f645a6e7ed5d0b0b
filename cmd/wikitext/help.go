package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikitext [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render wiki markup files to sanitized HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markup file (.md, .markdown, .wiki), directory, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: next to input)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --summary <n>         Print plain-text summaries instead of writing HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Text:")
	fmt.Fprintln(w, "      --no-sanitize         Skip HTML whitelist sanitization")
	fmt.Fprintln(w, "      --whitelist <path>    HTML whitelist file (YAML or Roadkill XML)")
	fmt.Fprintln(w, "      --tokens <path>       Custom token definitions file")
	fmt.Fprintln(w, "      --attachments <url>   Attachments URL path")
	fmt.Fprintln(w, "      --dump-whitelist      Print the effective whitelist as YAML and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  rendering failed")
	fmt.Fprintln(w, "  2  invalid flags or configuration")
	fmt.Fprintln(w, "  3  file not found or not writable")
}
