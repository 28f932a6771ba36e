package featureset

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/schema"
	rtesting "github.com/go-sif/reshape/testing"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func int32Struct(names ...string) *reshape.StructColumnType {
	fields := make([]reshape.StructField, len(names))
	for i, n := range names {
		fields[i] = reshape.StructField{Name: n, Type: &reshape.Int32ColumnType{}}
	}
	return reshape.StructOf(fields...)
}

func exampleSchema(t *testing.T) reshape.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "data"},
		[]reshape.ColumnType{
			&reshape.Int32ColumnType{},
			reshape.StructOf(reshape.StructField{Name: "nested", Type: int32Struct("field1", "field2", "field3")}),
		},
	)
	require.Nil(t, err)
	return s
}

func exampleRows() [][]any {
	return [][]any{
		{1, map[string]any{"nested": map[string]any{"field1": 10, "field2": 20, "field3": 30}}},
		{2, map[string]any{"nested": map[string]any{"field1": 30, "field2": 40, "field3": 50}}},
	}
}

func df1Schema(t *testing.T) reshape.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "random", "data1"},
		[]reshape.ColumnType{
			&reshape.Int32ColumnType{},
			&reshape.Int32ColumnType{},
			reshape.StructOf(reshape.StructField{Name: "nested", Type: int32Struct("field1", "field2")}),
		},
	)
	require.Nil(t, err)
	return s
}

func df2Schema(t *testing.T) reshape.Schema {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "data2"},
		[]reshape.ColumnType{
			&reshape.Int32ColumnType{},
			reshape.StructOf(reshape.StructField{Name: "nested", Type: int32Struct("field1", "field3", "field4", "field5")}),
		},
	)
	require.Nil(t, err)
	return s
}

func joinSources(env *rtesting.Env, t *testing.T) []Source {
	df1 := env.Create(df1Schema(t), [][]any{
		{1, 3, map[string]any{"nested": map[string]any{"field1": 10, "field2": 20}}},
		{2, 3, map[string]any{"nested": map[string]any{"field1": 30, "field2": 40}}},
	})
	df2 := env.Create(df2Schema(t), [][]any{
		{1, map[string]any{"nested": map[string]any{"field1": 5, "field3": 50, "field4": nil, "field5": 70}}},
		{2, map[string]any{"nested": map[string]any{"field1": 6, "field3": 70, "field4": 80, "field5": 90}}},
		{3, map[string]any{"nested": map[string]any{"field1": 7, "field3": 90, "field4": 100, "field5": 110}}},
	})
	return []Source{{Name: "df1", Frame: df1}, {Name: "df2", Frame: df2}}
}

func joinVariables() map[string]reshape.FieldSpec {
	return map[string]reshape.FieldSpec{
		"df1": reshape.Nest("data1", reshape.Nest("nested", reshape.Leaves("field1", "field2"))),
		"df2": reshape.Nest("data2", reshape.Nest("nested", reshape.Leaves("field3", "field4"))),
	}
}

func TestColumnNames(t *testing.T) {
	require.Equal(t, "feature.example@data.nested.field1", ColumnName("example", "data.nested.field1"))

	fset, alias, err := ParseColumnName("`feature.df2@data2.nested.field4`")
	require.Nil(t, err)
	require.Equal(t, "df2", fset)
	require.Equal(t, "data2.nested.field4", alias)

	_, _, err = ParseColumnName("data.nested")
	require.NotNil(t, err)

	require.Equal(t, "feature.df2@data2.nested.field4", UnquoteColumnName("`feature`.`df2@data2`.`nested`.`field4`"))
	require.Equal(t, "a`b", UnquoteColumnName("`a``b`"))
	require.Equal(t, "plain", UnquoteColumnName("plain"))
}

func TestTransform(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		df := env.Create(exampleSchema(t), exampleRows())
		variables := reshape.Nest("data", reshape.Nest("nested", reshape.Leaves("field1", "field3")))
		res := env.Track(Transform(df, "example", variables, []string{"id"}))
		require.Equal(t, []string{
			"id",
			"feature.example@data.nested.field1",
			"feature.example@data.nested.field3",
		}, res.Schema().ColumnNames())
		require.Equal(t, [][]any{
			{int32(1), int32(10), int32(30)},
			{int32(2), int32(30), int32(50)},
		}, env.Values(res))
	})
}

func TestTransformErrors(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		df := env.Create(exampleSchema(t), exampleRows())

		_, err := Transform(df, "empty", reshape.Sequence{}, []string{"id"})
		require.IsType(t, errors.EmptyFeaturesetError{}, err)
		require.True(t, errors.IsConfigError(err))

		_, err = Transform(df, "x", reshape.Sequence{reshape.Leaf("id"), reshape.Leaf("id")}, nil)
		require.IsType(t, errors.ColumnCollisionError{}, err)

		_, err = Transform(df, "x", reshape.Sequence{nil}, nil)
		require.IsType(t, errors.InvalidSpecError{}, err)
	})
}

func TestTransformIndexCollision(t *testing.T) {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"feature.x@a", "a"},
		[]reshape.ColumnType{&reshape.Int32ColumnType{}, &reshape.Int32ColumnType{}},
	)
	require.Nil(t, err)
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		df := env.Create(s, [][]any{{1, 2}})
		_, err := Transform(df, "x", reshape.Leaf("a"), []string{"feature.x@a"})
		require.IsType(t, errors.ColumnCollisionError{}, err)
		require.True(t, errors.IsConfigError(err))
	})
}

func TestJoin(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		res := env.Track(Join(joinSources(env, t), joinVariables(), &JoinConf{
			IndexCols:  []string{"id"},
			FillValues: map[string]any{"`feature.df2@data2.nested.field4`": 0},
		}))
		require.Equal(t, []string{
			"id",
			"feature.df1@data1.nested.field1",
			"feature.df1@data1.nested.field2",
			"feature.df2@data2.nested.field3",
			"feature.df2@data2.nested.field4",
		}, res.Schema().ColumnNames())
		require.Equal(t, [][]any{
			{int32(1), int32(10), int32(20), int32(50), int32(0)},
			{int32(2), int32(30), int32(40), int32(70), int32(80)},
			{int32(3), nil, nil, int32(90), int32(100)},
		}, env.Values(res))
	})
}

func TestJoinMissingColumns(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		sources := joinSources(env, t)
		variables := joinVariables()
		variables["df2"] = reshape.Nest("data2", reshape.Nest("nested", reshape.Leaves("field3", "missing1", "missing2")))
		conf := &JoinConf{
			IndexCols:  []string{"id"},
			FillValues: map[string]any{"feature.df2@data2.nested.missing1": 0},
		}

		_, err := Join(sources, variables, conf)
		require.NotNil(t, err)
		require.True(t, errors.IsConfigError(err))
		require.Contains(t, err.Error(), "data2.nested.missing1")
		require.Contains(t, err.Error(), "data2.nested.missing2")

		conf.IgnoreMissingColumns = true
		res := env.Track(Join(sources, variables, conf))
		require.Equal(t, []string{
			"id",
			"feature.df1@data1.nested.field1",
			"feature.df1@data1.nested.field2",
			"feature.df2@data2.nested.field3",
		}, res.Schema().ColumnNames())
		rows, err := res.NumRows()
		require.Nil(t, err)
		require.Equal(t, 3, rows)
	})
}

func TestJoinSourceWithoutVariables(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		sources := joinSources(env, t)
		variables := joinVariables()
		delete(variables, "df1")

		_, err := Join(sources, variables, &JoinConf{IndexCols: []string{"id"}})
		require.True(t, errors.IsConfigError(err))

		res := env.Track(Join(sources, variables, &JoinConf{IndexCols: []string{"id"}, IgnoreMissingColumns: true}))
		require.Equal(t, []string{
			"id",
			"feature.df2@data2.nested.field3",
			"feature.df2@data2.nested.field4",
		}, res.Schema().ColumnNames())

		_, err = Join(sources, joinVariables(), nil)
		require.IsType(t, errors.InvalidSpecError{}, err)
	})
}

func TestJoinEmptySourceSpec(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		sources := joinSources(env, t)
		variables := joinVariables()
		variables["df1"] = reshape.Sequence{}

		_, err := Join(sources, variables, &JoinConf{IndexCols: []string{"id"}})
		require.NotNil(t, err)
		require.True(t, errors.IsConfigError(err))
		var empty errors.EmptyFeaturesetError
		require.True(t, stderrors.As(err, &empty))
		require.Equal(t, "df1", empty.Featureset)

		res := env.Track(Join(sources, variables, &JoinConf{IndexCols: []string{"id"}, IgnoreMissingColumns: true}))
		require.Equal(t, []string{
			"id",
			"feature.df2@data2.nested.field3",
			"feature.df2@data2.nested.field4",
		}, res.Schema().ColumnNames())
	})
}

func TestJoinDuplicateSources(t *testing.T) {
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		sources := joinSources(env, t)
		sources = append(sources, sources[0])
		_, err := Join(sources, joinVariables(), &JoinConf{IndexCols: []string{"id"}})
		require.IsType(t, errors.ColumnCollisionError{}, err)
	})
}

func TestJoinBroadcast(t *testing.T) {
	labels, err := schema.CreateSchemaFromColumns(
		[]string{"code", "label"},
		[]reshape.ColumnType{&reshape.Int32ColumnType{}, &reshape.VarStringColumnType{}},
	)
	require.Nil(t, err)
	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		sources := joinSources(env, t)[:1]
		aux := env.Create(labels, [][]any{{1, "one"}, {2, "two"}})
		res := env.Track(Join(sources, joinVariables(), &JoinConf{
			IndexCols:        []string{"id"},
			BroadcastColumns: []Source{{Name: "labels", Frame: aux}},
		}))
		require.Equal(t, []string{
			"id",
			"feature.df1@data1.nested.field1",
			"feature.df1@data1.nested.field2",
			"labels",
		}, res.Schema().ColumnNames())
		broadcast := []any{reshape.StructValue{int32(1), "one"}, reshape.StructValue{int32(2), "two"}}
		require.Equal(t, [][]any{
			{int32(1), int32(10), int32(20), broadcast},
			{int32(2), int32(30), int32(40), broadcast},
		}, env.Values(res))

		_, err := Join(sources, joinVariables(), &JoinConf{
			IndexCols:        []string{"id"},
			BroadcastColumns: []Source{{Name: "id", Frame: aux}},
		})
		require.IsType(t, errors.ColumnCollisionError{}, err)
	})
}

const confYAML = `
index_cols: [id]
fill_values:
  "` + "`feature.df2@data2.nested.field4`" + `": 0
ignore_missing_columns: false
variables:
  df2:
    data2:
      nested: [field3, field4]
  df1:
    data1:
      nested:
        - field1
        - field2
`

func TestParseConf(t *testing.T) {
	conf, err := ParseConf([]byte(confYAML))
	require.Nil(t, err)
	require.Equal(t, []string{"id"}, conf.IndexCols)
	require.Equal(t, []string{"df2", "df1"}, conf.Sources)
	require.Equal(t, 0, conf.FillValues["`feature.df2@data2.nested.field4`"])
	require.Equal(t, joinVariables()["df1"], conf.Variables["df1"])
	fields, err := reshape.ResolveFields(conf.Variables["df1"], reshape.DefaultSeparator)
	require.Nil(t, err)
	require.Len(t, fields, 2)
	require.Equal(t, "data1.nested.field2", fields[1].Alias)

	_, err = ParseConf([]byte("index_cols: [id]\n"))
	require.True(t, errors.IsConfigError(err))
	_, err = ParseConf([]byte("variables:\n  df1: ~\n"))
	require.True(t, errors.IsConfigError(err))
}

func TestLoadConfAndRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "join.yaml")
	require.Nil(t, os.WriteFile(path, []byte(confYAML), 0644))
	conf, err := LoadConf(path)
	require.Nil(t, err)

	rtesting.RunOnEngines(t, func(t *testing.T, env *rtesting.Env) {
		sources := joinSources(env, t)
		res := env.Track(conf.Run(map[string]reshape.Frame{"df1": sources[0].Frame, "df2": sources[1].Frame}))
		require.Equal(t, []string{
			"id",
			"feature.df2@data2.nested.field3",
			"feature.df2@data2.nested.field4",
			"feature.df1@data1.nested.field1",
			"feature.df1@data1.nested.field2",
		}, res.Schema().ColumnNames())
		require.Equal(t, [][]any{
			{int32(1), int32(50), int32(0), int32(10), int32(20)},
			{int32(2), int32(70), int32(80), int32(30), int32(40)},
			{int32(3), int32(90), int32(100), nil, nil},
		}, env.Values(res))

		_, err := conf.Run(map[string]reshape.Frame{"df1": sources[0].Frame})
		require.IsType(t, errors.MissingColumnError{}, err)
	})
}
