package ddlcomment

import (
	"fmt"
	"regexp"
)

// ident matches a single unquoted identifier.
const ident = `[\p{L}\p{N}_]+`

// ws matches one or more whitespace characters, Unicode separators included
// (U+3000 ideographic space, U+00A0 no-break space, vertical tab).
const ws = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]+`

// text matches the body of a single-quoted literal without escapes.
const text = `[^']+`

var tableCommentRe = regexp.MustCompile(
	`(?i)COMMENT` + ws + `ON` + ws + `TABLE` + ws + `(` + ident + `)\.(` + ident + `)` + ws + `IS` + ws + `'(` + text + `)'`)

// TableComment is the result of matching a table-comment statement.
type TableComment struct {
	Schema      string
	TableName   string
	LogicalName string
}

// ExtractTable returns the first table comment in sql.
// The second result is false when sql contains none.
func ExtractTable(sql string) (TableComment, bool) {
	m := tableCommentRe.FindStringSubmatch(sql)
	if m == nil {
		return TableComment{}, false
	}
	return TableComment{Schema: m[1], TableName: m[2], LogicalName: m[3]}, true
}

// CountTables returns the number of table comments in sql.
func CountTables(sql string) int {
	return len(tableCommentRe.FindAllStringIndex(sql, -1))
}

// columnCommentRe builds the column pattern for one table. Schema and table
// are quoted so they only ever match literally.
func columnCommentRe(schema, table string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)COMMENT%[1]sON%[1]sCOLUMN%[1]s%[2]s\.%[3]s\.(%[4]s)%[1]sIS%[1]s'(%[5]s)'`,
		ws, regexp.QuoteMeta(schema), regexp.QuoteMeta(table), ident, text))
}

// ExtractColumns returns all column comments on schema.table in source order.
func ExtractColumns(sql, schema, table string) []Column {
	if schema == "" || table == "" {
		return nil
	}

	matches := columnCommentRe(schema, table).FindAllStringSubmatch(sql, -1)
	columns := make([]Column, 0, len(matches))
	for _, m := range matches {
		columns = append(columns, Column{Name: m[1], LogicalName: m[2]})
	}
	return columns
}

// Extract assembles a TableInfo from sql. It returns false when sql has no
// table comment.
func Extract(sql string) (*TableInfo, bool) {
	tc, ok := ExtractTable(sql)
	if !ok {
		return nil, false
	}

	info := &TableInfo{
		Schema:           tc.Schema,
		TableName:        tc.TableName,
		TableLogicalName: tc.LogicalName,
		Columns:          ExtractColumns(sql, tc.Schema, tc.TableName),
	}
	if n := CountTables(sql); n > 1 {
		info.IgnoredTables = n - 1
	}
	return info, true
}
