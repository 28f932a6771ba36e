package transform

import (
	"fmt"

	"github.com/go-sif/reshape"
)

// Melt pivots a Frame from wide to long form. Each input row produces one row per
// entry in valueVars, holding the idVars unchanged, the name of the value column in
// varName and its value in valueName. All valueVars must share a ColumnType.
func Melt(idVars []string, valueVars []string, varName string, valueName string) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		if len(valueVars) == 0 {
			return nil, fmt.Errorf("Melt requires at least one value column")
		}
		pairs := make([]reshape.Expr, len(valueVars))
		for i, v := range valueVars {
			if !f.Schema().HasColumn(v) {
				return nil, fmt.Errorf("cannot melt column %s: it does not exist", v)
			}
			pairs[i] = reshape.Struct(reshape.Lit(v).Alias(varName), reshape.Col(v).Alias(valueName))
		}
		tmp := meltColumnName(idVars)
		ids := make([]reshape.Expr, 0, len(idVars)+2)
		for _, id := range idVars {
			ids = append(ids, reshape.Col(id))
		}
		wide := append(append([]reshape.Expr{}, ids...), reshape.Array(pairs...).Alias(tmp))
		long := append(ids,
			reshape.Col(tmp).Field(varName).Alias(varName),
			reshape.Col(tmp).Field(valueName).Alias(valueName),
		)
		return reshape.To(f,
			func(f reshape.Frame) (reshape.Frame, error) { return f.Select(wide...) },
			func(f reshape.Frame) (reshape.Frame, error) { return f.Explode(tmp) },
			func(f reshape.Frame) (reshape.Frame, error) { return f.Select(long...) },
		)
	}
}

// meltColumnName picks a name for the intermediate pairs column which does not
// collide with any id column
func meltColumnName(idVars []string) string {
	name := "_melt"
	for taken := true; taken; {
		taken = false
		for _, id := range idVars {
			if id == name {
				name = "_" + name
				taken = true
				break
			}
		}
	}
	return name
}
