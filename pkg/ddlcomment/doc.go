// Package ddlcomment extracts table and column documentation from
// PostgreSQL-style COMMENT statements.
//
// Only two statement forms are recognized; everything else in the input is
// ignored, including other DDL, quoted strings and SQL comments.
//
// # Grammar
//
// Keywords are matched case-insensitively and separated by one or more
// whitespace characters. Whitespace is Unicode-aware: besides ASCII space,
// tab and line breaks it includes the vertical tab, U+0085, U+001C to
// U+001F and every Unicode separator (Z category), so a full-width
// U+3000 or a no-break space U+00A0 between keywords is accepted. An identifier is one or more Unicode letters, digits
// or underscores. Quoted identifiers are not supported.
//
//	table-comment  = "COMMENT" "ON" "TABLE"  ident "." ident "IS" "'" text "'"
//	column-comment = "COMMENT" "ON" "COLUMN" ident "." ident "." ident "IS" "'" text "'"
//	text           = one or more characters other than "'"
//
// # Invariants
//
//   - Only the first table-comment (by text position) is honored. Further
//     table comments are counted by [CountTables] but never extracted.
//   - A column-comment belongs to the table only when its schema and table
//     identifiers match the table-comment's exactly (case-insensitively).
//     Comments on any other table are dropped without error.
//   - Column comments are returned in source order. Duplicate column names
//     are kept as-is.
//
// # Basic Usage
//
//	info, ok := ddlcomment.Extract(sqlText)
//	if !ok {
//	    // no COMMENT ON TABLE statement
//	}
//	for _, c := range info.Columns {
//	    fmt.Println(c.Name, c.LogicalName)
//	}
package ddlcomment
