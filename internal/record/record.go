package record

import "strconv"

// NotAvailable fills tree-pattern fields that could not be located in the descriptor.
const NotAvailable = "N/A"

// Key-pattern categories, one per recognized credential family.
const (
	CategoryTDSMain      = "TDS Main"
	CategoryTDSSlave     = "TDS Slave"
	CategoryMainDatabase = "Main Database"
	CategoryIdealSlave   = "IDEAL Slave"
)

// Reportable is implemented by every record variant handed to a reporting surface.
// Values returns the fields in Columns order, verbatim.
type Reportable interface {
	Columns() []string
	Values() []string
	// Source is the grouping key used when rows are merged per originating file.
	Source() string
}

// KeyPatternRecord is one credential group found in a properties file.
type KeyPatternRecord struct {
	Category string `yaml:"category"`
	Region   string `yaml:"region"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	File string `yaml:"-"`
}

var keyPatternColumns = []string{"Database Type", "Region", "URL", "Username", "Password"}

func (r KeyPatternRecord) Columns() []string { return keyPatternColumns }

func (r KeyPatternRecord) Values() []string {
	return []string{r.Category, r.Region, r.URL, r.Username, r.Password}
}

func (r KeyPatternRecord) Source() string { return r.File }

// TreePatternRecord is one datasource element found in a deployment descriptor.
type TreePatternRecord struct {
	JNDIName string `yaml:"jndi_name"`
	Username string `yaml:"username"`
	URL      string `yaml:"url"`

	File string `yaml:"-"`
}

var treePatternColumns = []string{"JNDI Name", "Username", "URL"}

func (r TreePatternRecord) Columns() []string { return treePatternColumns }

func (r TreePatternRecord) Values() []string {
	return []string{r.JNDIName, r.Username, r.URL}
}

func (r TreePatternRecord) Source() string { return r.File }

// JDBCPairRecord is a positional jdbc.user / jdbc.URL line pair from the directory scan.
// User and URL hold the whole trimmed line as found in the file.
type JDBCPairRecord struct {
	File string `yaml:"file"`
	User string `yaml:"user"`
	URL  string `yaml:"url"`
}

var jdbcPairColumns = []string{"File", "jdbc.user", "jdbc.URL"}

func (r JDBCPairRecord) Columns() []string { return jdbcPairColumns }

func (r JDBCPairRecord) Values() []string {
	return []string{r.File, r.User, r.URL}
}

func (r JDBCPairRecord) Source() string { return r.File }

// FileSummaryRecord is the per-file overview printed by the directory scan.
type FileSummaryRecord struct {
	File     string `yaml:"file"`
	Pairs    int    `yaml:"pairs"`
	Engine   string `yaml:"engine"`
	Endpoint string `yaml:"endpoint"`
}

var fileSummaryColumns = []string{"File", "Pairs", "Engine", "Endpoint"}

func (r FileSummaryRecord) Columns() []string { return fileSummaryColumns }

func (r FileSummaryRecord) Values() []string {
	return []string{r.File, strconv.Itoa(r.Pairs), r.Engine, r.Endpoint}
}

func (r FileSummaryRecord) Source() string { return r.File }

// Label returns the pipeline-specific source label: the region code for
// key-pattern records, the JNDI name for tree-pattern records and the file
// path for scan pairs.
func Label(r Reportable) string {
	switch v := r.(type) {
	case KeyPatternRecord:
		return v.Region
	case TreePatternRecord:
		return v.JNDIName
	case JDBCPairRecord:
		return v.File
	case FileSummaryRecord:
		return v.File
	default:
		return ""
	}
}

// Reportables converts a typed record slice for the reporting surfaces.
func Reportables[T Reportable](records []T) []Reportable {
	out := make([]Reportable, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	return out
}
