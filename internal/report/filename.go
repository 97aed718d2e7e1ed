package report

import (
	"strings"
	"time"

	"github.com/leapstack-labs/ddldoc/pkg/ddlcomment"
)

// TimestampLayout is the layout of the generation timestamp in file names.
const TimestampLayout = "20060102150405"

var filenameReplacer = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFilename replaces characters that are not allowed in file names on
// common filesystems with an underscore. Nothing else is normalized.
func SanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}

// Filename returns the report file name for info generated at ts:
// {schema}_{table}_{logical}_{YYYYMMDDHHMMSS}.csv
func Filename(info *ddlcomment.TableInfo, ts time.Time) string {
	return info.Schema + "_" + info.TableName + "_" +
		SanitizeFilename(info.TableLogicalName) + "_" + ts.Format(TimestampLayout) + ".csv"
}
