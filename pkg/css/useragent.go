package css

import "sync"

// userAgentCSS is the built-in default stylesheet. It is the lowest
// cascade layer: any author rule overrides it.
const userAgentCSS = `
head, title, meta, link, style, script { display: none; }

html, body, div, section, article, header, footer, nav, main,
blockquote, pre, ul, ol, li, p, h1, h2, h3, h4, h5, h6 { display: block; }

span, a, b, i, em, strong, small, code, img, br { display: inline; }

body { margin: 0; }

p  { margin: 10px 0; }
h1 { margin: 18px 0 12px; font-size: 32px; font-weight: bold; }
h2 { margin: 16px 0 10px; font-size: 26px; font-weight: bold; }
h3 { margin: 14px 0 8px;  font-size: 22px; font-weight: bold; }
h4 { margin: 12px 0 6px;  font-size: 18px; font-weight: bold; }
h5 { margin: 12px 0 6px;  font-size: 16px; font-weight: bold; }
h6 { margin: 12px 0 6px;  font-size: 14px; font-weight: bold; }

ul, ol { margin: 6px 0; padding-left: 26px; }
li { margin: 2px 0; }

blockquote { margin: 10px 0; padding-left: 14px; }
pre { margin: 10px 0; font-family: monospace; }
code { font-family: monospace; }

b, strong { font-weight: bold; }
i, em { font-style: italic; }

a { color: #0645ad; text-decoration: underline; }
`

var (
	uaOnce  sync.Once
	uaSheet *Stylesheet
)

// UserAgentStylesheet returns the parsed built-in stylesheet. The parse
// happens once; the result is shared and must not be modified.
func UserAgentStylesheet() *Stylesheet {
	uaOnce.Do(func() {
		uaSheet = ParseStylesheet(userAgentCSS)
	})
	return uaSheet
}
