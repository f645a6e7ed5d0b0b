// Package wikitext renders user-authored wiki markup into safe HTML.
//
// # Quick Start
//
// Create a renderer once and share it between requests:
//
//	r, err := wikitext.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := r.Render(ctx, "# Hello\n\nSee [the FAQ](FAQ).")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(page.HTML)
//
// # Render Pipeline
//
// Every render runs the same chain of stages:
//
//  1. Markup normalization (line endings, ==highlight== syntax)
//  2. Markdown to HTML via goldmark (GFM, footnotes, syntax highlighting),
//     with wiki links and image paths rewritten as they are parsed
//  3. Custom token substitution ({{toc}}, {{warningbox:...}})
//  4. Sanitization against the HTML element whitelist
//
// Tokens are expanded before sanitization, so their output is held to the
// same whitelist as the page itself. Sanitization can be turned off for
// trusted authors with Settings.DisableHTMLWhitelist; the stage is then skipped
// entirely.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	idx, _ := wikitext.NewPageIndex("/wiki", []wikitext.PageRef{{Title: "FAQ"}})
//	r, err := wikitext.NewRenderer(
//	    wikitext.WithSettings(wikitext.Settings{
//	        HTMLWhitelistPath:  "/etc/wiki/whitelist.yaml",
//	        AttachmentsURLPath: "/attachments/",
//	    }),
//	    wikitext.WithPageLookup(idx),
//	)
//
// Whitelist and token definition files are read once, in NewRenderer. A
// missing or malformed file is reported as a warning and the built-in
// defaults are used instead.
//
// # Concurrency
//
// A Renderer is immutable after NewRenderer and safe for concurrent use.
package wikitext
