package featureset

import (
	"fmt"
	"strings"
)

const (
	columnPrefix = "feature."
	aliasMarker  = "@"
)

// ColumnName returns the name of the feature column holding alias within a featureset
func ColumnName(fsetName string, alias string) string {
	return columnPrefix + fsetName + aliasMarker + alias
}

// ParseColumnName splits a (possibly quoted) feature column name into its featureset
// name and field alias
func ParseColumnName(name string) (fsetName string, alias string, err error) {
	unquoted := UnquoteColumnName(name)
	rest, ok := strings.CutPrefix(unquoted, columnPrefix)
	if !ok {
		return "", "", fmt.Errorf("%q is not a feature column name", name)
	}
	fsetName, alias, ok = strings.Cut(rest, aliasMarker)
	if !ok || fsetName == "" || alias == "" {
		return "", "", fmt.Errorf("%q is not a feature column name", name)
	}
	return fsetName, alias, nil
}

// UnquoteColumnName removes backtick quoting from a column reference, so that
// "`feature.a@b.c`" and "`feature`.`a@b`.`c`" both refer to the column
// "feature.a@b.c". A doubled backtick inside quotes stands for a literal one.
func UnquoteColumnName(name string) string {
	if !strings.Contains(name, "`") {
		return name
	}
	var res strings.Builder
	res.Grow(len(name))
	quoted := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c != '`' {
			res.WriteByte(c)
			continue
		}
		if quoted && i+1 < len(name) && name[i+1] == '`' {
			res.WriteByte('`')
			i++
			continue
		}
		quoted = !quoted
	}
	return res.String()
}
