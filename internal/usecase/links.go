package usecase

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
)

var (
	linkPolicyOnce sync.Once
	linkPolicy     *bluemonday.Policy
)

func linkSanitizer() *bluemonday.Policy {
	linkPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireParseableURLs(true)
		linkPolicy = policy
	})
	return linkPolicy
}

// safeHref returns raw when it is an absolute http, https or mailto URL.
func safeHref(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	cleaned := linkSanitizer().Sanitize(`<a href="` + html.EscapeString(raw) + `">link</a>`)
	z := nethtml.NewTokenizer(strings.NewReader(cleaned))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return "", false
		case nethtml.StartTagToken:
			if _, hasAttr := z.TagName(); !hasAttr {
				return "", false
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" && len(val) > 0 {
					return string(val), true
				}
				if !more {
					return "", false
				}
			}
		}
	}
}
