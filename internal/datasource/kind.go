package datasource

import "strings"

// Kind classifies descriptor elements for extraction.
type Kind int

const (
	// KindNone is the fallback for every tag not recognized below.
	KindNone Kind = iota
	// KindDatasource is a local name containing "datasource" but not "xa-datasource".
	KindDatasource
	// KindXADatasource is a local name containing "xa-datasource".
	KindXADatasource
)

func (k Kind) String() string {
	switch k {
	case KindDatasource:
		return "datasource"
	case KindXADatasource:
		return "xa-datasource"
	default:
		return "none"
	}
}

// Tag substrings used by the classifier and the field lookups. Matching is by
// containment on the local name, so vendor-specific variants such as
// "xa-datasource-class" are classified too; the jndi-name requirement in
// Extract filters most of them out.
const (
	tagDatasource   = "datasource"
	tagXADatasource = "xa-datasource"
	tagSecurity     = "security"
	tagUserName     = "user-name"
	tagConnURL      = "connection-url"
	tagXAProperty   = "xa-datasource-property"

	attrJNDIName = "jndi-name"
	attrName     = "name"
	xaURLName    = "URL"
)

// Classify returns the Kind of e based on its local name alone.
func Classify(e *Element) Kind {
	tag := e.Tag()
	switch {
	case strings.Contains(tag, tagXADatasource):
		return KindXADatasource
	case strings.Contains(tag, tagDatasource):
		return KindDatasource
	default:
		return KindNone
	}
}

func tagContains(sub string) func(*Element) bool {
	return func(e *Element) bool {
		return strings.Contains(e.Tag(), sub)
	}
}
