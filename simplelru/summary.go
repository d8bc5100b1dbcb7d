package simplelru

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var summaryPrinter = message.NewPrinter(language.English)

// Summary returns a human readable dump of at most limit entries, newest
// first. It is meant for debugging and its format may change.
func (c *LRU[K, V]) Summary(limit int) string {
	return c.summary("LRU", limit)
}

// Summary is like LRU.Summary, prefixed with "ExpiringLRU".
func (c *ExpiringLRU[K, V]) Summary(limit int) string {
	return c.LRU.summary("ExpiringLRU", limit)
}

func (c *LRU[K, V]) summary(name string, limit int) string {
	var b strings.Builder
	summaryPrinter.Fprintf(&b, "%s size=%d capacity=%d", name, c.size, c.capacity)
	if limit <= 0 || c.size == 0 {
		return b.String()
	}
	b.WriteString(" [")
	n := 0
	for k, v := range c.All() {
		if n == limit {
			summaryPrinter.Fprintf(&b, " …%d more", c.size-n)
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		summaryPrinter.Fprintf(&b, "%v:%v", k, v)
		n++
	}
	b.WriteByte(']')
	return b.String()
}
