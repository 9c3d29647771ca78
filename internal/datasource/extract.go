package datasource

import (
	"github.com/kamusis/credscan/internal/record"
)

// Extract returns one record per datasource element carrying a jndi-name
// attribute, in document order. Fields that cannot be located are "N/A".
func Extract(root *Element) []record.TreePatternRecord {
	var out []record.TreePatternRecord
	if root == nil {
		return out
	}
	root.Walk(func(e *Element) bool {
		kind := Classify(e)
		if kind == KindNone {
			return true
		}
		jndi, ok := e.Attr(attrJNDIName)
		if !ok {
			return true
		}
		out = append(out, record.TreePatternRecord{
			JNDIName: jndi,
			Username: resolveUsername(e),
			URL:      resolveURL(e, kind),
		})
		return true
	})
	return out
}

// resolveUsername tries each security block in turn until one holds a
// non-empty user-name.
func resolveUsername(ds *Element) string {
	username := record.NotAvailable
	isUser := func(e *Element) bool {
		return tagContains(tagUserName)(e) && e.Text != ""
	}
	ds.Walk(func(e *Element) bool {
		if !tagContains(tagSecurity)(e) {
			return true
		}
		if u := e.Find(isUser); u != nil {
			username = u.Text
			return false
		}
		return true
	})
	return username
}

func resolveURL(ds *Element, kind Kind) string {
	if kind == KindXADatasource {
		return resolveXAURL(ds)
	}
	u := ds.Find(func(e *Element) bool {
		return tagContains(tagConnURL)(e) && e.Text != ""
	})
	if u == nil {
		return record.NotAvailable
	}
	return u.Text
}

// resolveXAURL reads the first URL property. Only that property is consulted:
// when neither its text nor any child's text is set, the result is "N/A".
func resolveXAURL(ds *Element) string {
	prop := ds.Find(func(e *Element) bool {
		name, _ := e.Attr(attrName)
		return tagContains(tagXAProperty)(e) && name == xaURLName
	})
	if prop == nil {
		return record.NotAvailable
	}
	if prop.Text != "" {
		return prop.Text
	}
	for _, c := range prop.Children {
		if c.Text != "" {
			return c.Text
		}
	}
	return record.NotAvailable
}

// Find returns the first record whose JNDI name equals jndi exactly.
func Find(records []record.TreePatternRecord, jndi string) (record.TreePatternRecord, bool) {
	for _, r := range records {
		if r.JNDIName == jndi {
			return r, true
		}
	}
	return record.TreePatternRecord{}, false
}
