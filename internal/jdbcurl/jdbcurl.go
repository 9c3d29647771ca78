// Package jdbcurl derives display information from JDBC connection URLs.
package jdbcurl

import "strings"

const jdbcPrefix = "jdbc:"

// NormalizeEngine maps JDBC sub-protocol aliases onto one canonical name.
func NormalizeEngine(engine string) string {
	v := strings.ToLower(strings.TrimSpace(engine))
	switch v {
	case "postgresql", "pg":
		return "postgres"
	case "mssql", "jtds":
		return "sqlserver"
	case "opengauss":
		return "mogdb"
	case "informix-sqli":
		return "informix"
	case "":
		return "unknown"
	default:
		return v
	}
}

// Engine returns the database engine named by a JDBC URL's sub-protocol,
// e.g. "mariadb" for jdbc:mariadb://host/db. Non-JDBC values yield "unknown".
func Engine(jdbcURL string) string {
	jdbcURL = strings.TrimSpace(jdbcURL)
	if !strings.HasPrefix(jdbcURL, jdbcPrefix) {
		return NormalizeEngine("")
	}
	rest := strings.TrimPrefix(jdbcURL, jdbcPrefix)
	idx := strings.Index(rest, ":")
	if idx == -1 {
		return NormalizeEngine("")
	}
	return NormalizeEngine(rest[:idx])
}

// Endpoint rewrites a JDBC URL as engine://authority/path for display.
//
//	jdbc:postgresql://host:5432/db       → postgres://host:5432/db
//	jdbc:oracle:thin:@//host:1521/svc    → oracle://host:1521/svc
//	jdbc:oracle:thin:@alias              → oracle://alias
//	jdbc:sybase:Tds:host:5000?ServiceName=db → sybase://host:5000?ServiceName=db
//
// It returns "" for values that are not JDBC URLs.
func Endpoint(jdbcURL string) string {
	jdbcURL = strings.TrimSpace(jdbcURL)
	if !strings.HasPrefix(jdbcURL, jdbcPrefix) {
		return ""
	}
	rest := strings.TrimPrefix(jdbcURL, jdbcPrefix)

	protocolIdx := strings.Index(rest, ":")
	if protocolIdx == -1 {
		return ""
	}
	engine := NormalizeEngine(rest[:protocolIdx])
	afterProtocol := rest[protocolIdx+1:]

	if sep := strings.Index(rest, "//"); sep != -1 {
		return engine + ":" + rest[sep:]
	}

	// Oracle style: driver, then '@' ahead of the authority.
	if at := strings.Index(afterProtocol, "@"); at != -1 {
		return engine + "://" + afterProtocol[at+1:]
	}

	if strings.Contains(afterProtocol, "Tds:") {
		return engine + "://" + strings.Replace(afterProtocol, "Tds:", "", 1)
	}

	return engine + "://" + afterProtocol
}

// LineValue returns the value part of a "key=value" line, or the line itself
// when it holds no '='.
func LineValue(line string) string {
	_, v, ok := strings.Cut(line, "=")
	if !ok {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(v)
}
