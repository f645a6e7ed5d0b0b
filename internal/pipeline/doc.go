// Package pipeline implements the wiki markup to safe HTML render chain.
//
// A render is a sequence of middleware stages over one PageContent value:
//   - markup normalization (line endings, blank lines, highlight syntax)
//   - Markdown to HTML conversion, with link and image rewrite hooks
//   - highlight placeholder conversion to <mark>
//   - custom token substitution
//   - whitelist sanitization, omitted when sanitization is disabled
//
// Token substitution runs before sanitization so that handler output is
// pruned like any other markup. Stages hold no per-render state, and a
// Chain may be invoked concurrently once it is built.
package pipeline
