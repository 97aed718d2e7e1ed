package ddlcomment

// Column is a documented column: its physical name and logical name.
type Column struct {
	Name        string `json:"name" yaml:"name"`
	LogicalName string `json:"logical_name" yaml:"logical_name"`
}

// TableInfo is the documentation extracted for a single table.
type TableInfo struct {
	Schema           string   `json:"schema" yaml:"schema"`
	TableName        string   `json:"table_name" yaml:"table_name"`
	TableLogicalName string   `json:"table_logical_name" yaml:"table_logical_name"`
	Columns          []Column `json:"columns" yaml:"columns"`

	// SourcePath is the file the record was read from, if any.
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty"`
	// IgnoredTables counts table comments after the first one.
	IgnoredTables int `json:"ignored_tables,omitempty" yaml:"ignored_tables,omitempty"`
}

// Valid reports whether the record names a table.
func (t *TableInfo) Valid() bool {
	return t != nil && t.TableName != ""
}

// QualifiedName returns "schema.table".
func (t *TableInfo) QualifiedName() string {
	return t.Schema + "." + t.TableName
}
