package script

import "github.com/dekarrin/barescript/internal/markdown"

// file library_markdown.go implements the markdown* builtin family
// described in SPEC_FULL.md §4.9, delegating to the C8 markdown
// collaborator. A parsed document is represented as a plain Value Object
// with a "title" key (the first level-1 heading text, "" if none) and an
// "html" key (the rendered HTML) so it can flow through ordinary script data
// structures rather than needing a second Value case.

func init() {
	registerBuiltin("markdownParse", false, biMarkdownParse)
	registerBuiltin("markdownTitle", false, biMarkdownTitle)
	registerBuiltin("markdownPrint", false, biMarkdownPrint)
}

func biMarkdownParse(args []Value, host HostRef) (Value, error) {
	text, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	doc := markdown.Parse([]byte(text))
	out := NewObject()
	out.Obj().Set("title", NewString(doc.Title()))
	out.Obj().Set("html", NewString(markdown.RenderHTML([]byte(text))))
	return out, nil
}

func biMarkdownTitle(args []Value, host HostRef) (Value, error) {
	doc, ok := objArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	title, present := doc.Get("title")
	if !present || title.Type() != String {
		return NewNull(), nil
	}
	if title.Str() == "" {
		return NewNull(), nil
	}
	return title, nil
}

// biMarkdownPrint is a debugLog-style sink: it stringifies and logs every
// argument, one line each, and returns Null.
func biMarkdownPrint(args []Value, host HostRef) (Value, error) {
	for _, a := range args {
		host.log(stringify(a))
	}
	return NewNull(), nil
}
