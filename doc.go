// Package mdhtml converts CommonMark-style Markdown to HTML.
//
// The package recognizes the block structure of a document: paragraphs,
// ATX and setext headings, block quotes, bullet and ordered lists, thematic
// breaks and indented code blocks, following CommonMark precedence and lazy
// continuation rules. Inline markup is delegated to an InlineProcessor; the
// default passes text through unchanged.
//
// Pipeline:
//   - Tokenize turns source text into tokens
//   - ToLines splits tokens into lines
//   - Classify decides what block a line starts
//   - Parse groups lines into a Document block tree
//   - RenderHTML and Document.HTML write HTML
//
// Example:
//
//	doc, err := mdhtml.Parse("# Hello\n\n- one\n- two\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.HTML())
//
// Convert and HTTPConvert wrap the pipeline for io.Reader and HTTP sources.
// Options such as WithMaxDepth and WithLogger tune parsing.
package mdhtml
