package internal

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// DefaultHTMLTitle is used when the markdown has no top-level heading and no
// title was configured.
const DefaultHTMLTitle = "Cursor Chat History"

// Inline chroma styles keep the documents self-contained.
var markdownConverter = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false),
			),
		),
	),
)

// RenderHTMLDocument converts markdown into a complete standalone HTML
// document with embedded github-style CSS. The document title is taken from
// the first top-level heading, falling back to the given title.
func RenderHTMLDocument(markdownText, fallbackTitle string) (string, error) {
	var body bytes.Buffer
	if err := markdownConverter.Convert([]byte(markdownText), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	title := documentTitle(markdownText)
	if title == "" {
		title = fallbackTitle
	}
	if title == "" {
		title = DefaultHTMLTitle
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n")
	doc.WriteString("<html lang=\"en\">\n<head>\n")
	doc.WriteString("    <meta charset=\"UTF-8\">\n")
	doc.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&doc, "    <title>%s</title>\n", html.EscapeString(title))
	doc.WriteString("    <style>\n")
	doc.WriteString(documentCSS)
	doc.WriteString("    </style>\n</head>\n")
	doc.WriteString("<body class=\"markdown-body\">\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")

	return doc.String(), nil
}

// documentTitle returns the text of the first "# " heading, if any.
func documentTitle(markdownText string) string {
	for _, line := range strings.Split(markdownText, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

const documentCSS = `        .markdown-body {
            box-sizing: border-box;
            min-width: 200px;
            max-width: 980px;
            margin: 0 auto;
            padding: 45px;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #24292e;
            background-color: #fff;
        }

        .markdown-body h1, .markdown-body h2, .markdown-body h3 {
            border-bottom: 1px solid #eaecef;
            padding-bottom: 0.3em;
        }

        .markdown-body pre {
            background-color: #f6f8fa;
            border-radius: 3px;
            padding: 16px;
            overflow: auto;
            font-family: SFMono-Regular, Consolas, 'Liberation Mono', Menlo, monospace;
        }

        .markdown-body code {
            background-color: rgba(27,31,35,0.05);
            border-radius: 3px;
            padding: 0.2em 0.4em;
            font-size: 85%;
            font-family: SFMono-Regular, Consolas, 'Liberation Mono', Menlo, monospace;
        }

        .markdown-body pre code {
            background-color: transparent;
            padding: 0;
        }

        .markdown-body ul, .markdown-body ol {
            margin-top: 0.5em;
            margin-bottom: 0.5em;
            padding-left: 2em;
        }

        @media (max-width: 767px) {
            .markdown-body {
                padding: 15px;
            }
        }
`
