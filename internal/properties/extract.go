package properties

import (
	"regexp"
	"strings"

	"github.com/kamusis/credscan/internal/record"
)

// Family describes one credential naming convention. A family is driven
// either by Pattern, whose first group captures the region, or by Literal,
// an exact URL key with a fixed Region. Sibling keys are derived by
// substituting the region into UserKey and PassKey.
type Family struct {
	Category string
	Pattern  *regexp.Regexp
	Literal  string
	Region   string
	URLKey   string
	UserKey  string
	PassKey  string
}

// Families is evaluated in order; output follows this order first.
var Families = []Family{
	{
		Category: record.CategoryTDSMain,
		Pattern:  regexp.MustCompile(`^mariadb\.tds\.db\.URL\.([A-Z.]+)`),
		URLKey:   "mariadb.tds.db.URL.{region}",
		UserKey:  "mariadb.tds.user.{region}",
		PassKey:  "mariadb.tds.pass.{region}",
	},
	{
		Category: record.CategoryTDSSlave,
		Pattern:  regexp.MustCompile(`^mariadb\.tds\.slave\.db\.URL\.([A-Z]+)`),
		URLKey:   "mariadb.tds.slave.db.URL.{region}",
		UserKey:  "mariadb.tds.slave.user.{region}",
		PassKey:  "mariadb.tds.slave.pass.{region}",
	},
	{
		Category: record.CategoryMainDatabase,
		Literal:  "dbURL",
		Region:   "SPARKDB",
		URLKey:   "dbURL",
		UserKey:  "dbUser",
		PassKey:  "dbpassword",
	},
	{
		Category: record.CategoryIdealSlave,
		Literal:  "mariadb.ideal.slave.db.URL.SG",
		Region:   "SG",
		URLKey:   "mariadb.ideal.slave.db.URL.{region}",
		UserKey:  "mariadb.ideal.slave.user.{region}",
		PassKey:  "mariadb.ideal.slave.pass.{region}",
	},
}

func (f Family) key(tmpl, region string) string {
	return strings.ReplaceAll(tmpl, "{region}", region)
}

// build assembles the record for region. Missing siblings become "".
func (f Family) build(m *Map, region string) record.KeyPatternRecord {
	return record.KeyPatternRecord{
		Category: f.Category,
		Region:   region,
		URL:      m.Value(f.key(f.URLKey, region)),
		Username: m.Value(f.key(f.UserKey, region)),
		Password: m.Value(f.key(f.PassKey, region)),
	}
}

// ExtractCredentials returns one record per credential group in m, ordered
// by family and then by key position in the file.
//
// The patterns are anchored at the start only, so a region capture stops at
// the first character outside its class; the URL itself is always re-read
// through the reconstructed key.
func ExtractCredentials(m *Map) []record.KeyPatternRecord {
	var out []record.KeyPatternRecord
	keys := m.Keys()
	for _, f := range Families {
		if f.Pattern == nil {
			if m.Has(f.Literal) {
				out = append(out, f.build(m, f.Region))
			}
			continue
		}
		for _, key := range keys {
			match := f.Pattern.FindStringSubmatch(key)
			if match == nil {
				continue
			}
			out = append(out, f.build(m, match[1]))
		}
	}
	return out
}
