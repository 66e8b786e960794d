package main

import (
	"regexp"
	"strings"
)

var createObject = regexp.MustCompile(`(?i)^\s*CREATE\s+(?:UNIQUE\s+)?(?:NULL_FILTERED\s+)?(TABLE|INDEX)\s+(?:IF\s+NOT\s+EXISTS\s+)?` + "`?" + `([A-Za-z_][A-Za-z0-9_]*)`)

// splitDDLStatements drops comment and blank lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// ddlObjectName returns "table:name" or "index:name" for CREATE statements,
// lower-cased, and "" for anything else.
func ddlObjectName(stmt string) string {
	m := createObject.FindStringSubmatch(stmt)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1]) + ":" + strings.ToLower(m[2])
}

func existingObjects(statements []string) map[string]bool {
	existing := make(map[string]bool, len(statements))
	for _, stmt := range statements {
		if obj := ddlObjectName(stmt); obj != "" {
			existing[obj] = true
		}
	}
	return existing
}

// pendingStatements filters out CREATE statements for objects that exist.
// Other statements always run.
func pendingStatements(statements []string, existing map[string]bool) []string {
	var pending []string
	for _, stmt := range statements {
		if obj := ddlObjectName(stmt); obj != "" && existing[obj] {
			continue
		}
		pending = append(pending, stmt)
	}
	return pending
}
