package featureset

import (
	stderrors "errors"
	"fmt"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"github.com/go-sif/reshape/internal/util"
	"github.com/go-sif/reshape/logging"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Source is a named Frame. Sources are joined in the order they are given.
type Source struct {
	Name  string
	Frame reshape.Frame
}

// JoinConf configures Join.
//
// BroadcastColumns are not joined against the featuresets and do not add
// per-row feature columns. Each auxiliary Frame is collected whole and appears
// as one extra list-of-struct column, named after it, holding the same value
// in every row.
type JoinConf struct {
	IndexCols            []string       // Columns every source is joined on. Required.
	FillValues           map[string]any // Defaults for null feature columns, keyed by (possibly quoted) column name
	BroadcastColumns     []Source       // Small auxiliary Frames attached to every row as a list of structs named after them
	IgnoreMissingColumns bool           // Drop missing variables, empty featuresets, sources and fill targets instead of failing
}

// Join assembles a featureset from each source, using the variables registered
// under its name, and outer-joins them on conf.IndexCols. An index key present
// in any source is present in the result, with nulls for the features of
// sources lacking it, unless conf.FillValues supplies a default.
//
// The result holds the index columns, followed by each source's feature
// columns in source order. Missing variables are reported together, unless
// conf.IgnoreMissingColumns is set, in which case they are dropped.
func Join(sources []Source, variables map[string]reshape.FieldSpec, conf *JoinConf) (reshape.Frame, error) {
	if conf == nil || len(conf.IndexCols) == 0 {
		return nil, errors.InvalidSpecError{Reason: "featuresets must be joined on at least one index column"}
	}
	log := logging.Logger().WithField("operation", "join_featuresets")

	var missing *multierror.Error
	var featuresets []reshape.Frame
	release := func() {
		for _, f := range featuresets {
			reshape.Release(f)
		}
	}
	seenSources := make(map[string]bool, len(sources))
	for _, src := range sources {
		if seenSources[src.Name] {
			release()
			return nil, errors.ColumnCollisionError{Featureset: src.Name, Name: src.Name}
		}
		seenSources[src.Name] = true
		fields, err := presentFields(src, variables, conf, &missing, log)
		if err != nil {
			release()
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		fset, err := transformFields(src.Frame, src.Name, fields, conf.IndexCols)
		if err != nil {
			release()
			return nil, err
		}
		featuresets = append(featuresets, fset)
	}
	if missing != nil {
		release()
		missing.ErrorFormat = util.FormatMultiError
		return nil, missing
	}
	if len(featuresets) == 0 {
		return nil, errors.EmptyFeaturesetError{Featureset: "*"}
	}

	joined := featuresets[0]
	for i, fset := range featuresets[1:] {
		log.WithField("index", conf.IndexCols).Debugf("outer-joining featureset %d", i+1)
		next, err := joined.Join(fset, conf.IndexCols, reshape.OuterJoin)
		if i > 0 {
			reshape.Release(joined)
		}
		if err != nil {
			release()
			return nil, err
		}
		joined = next
	}
	if len(featuresets) > 1 {
		release()
	}

	res, err := reshape.To(joined, fillOperation(conf, log), broadcastOperation(conf, log))
	if res != joined {
		reshape.Release(joined)
	}
	return res, err
}

// presentFields resolves the variables of a source, keeping the fields which
// exist in it. Absent index columns and fields, and variables resolving to no
// fields at all, are added to missing, unless they may be ignored.
func presentFields(src Source, variables map[string]reshape.FieldSpec, conf *JoinConf, missing **multierror.Error, log *logrus.Entry) ([]reshape.ResolvedField, error) {
	log = log.WithField("featureset", src.Name)
	spec, ok := variables[src.Name]
	if !ok {
		if conf.IgnoreMissingColumns {
			log.Debug("no variables configured, skipping source")
			return nil, nil
		}
		*missing = multierror.Append(*missing, errors.MissingColumnError{Featureset: src.Name, Name: "variables"})
		return nil, nil
	}
	fields, err := reshape.ResolveFields(spec, reshape.DefaultSeparator)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		if conf.IgnoreMissingColumns {
			log.Debug("variables resolve to no fields, skipping source")
			return nil, nil
		}
		*missing = multierror.Append(*missing, errors.EmptyFeaturesetError{Featureset: src.Name})
		return nil, nil
	}
	s := src.Frame.Schema()
	for _, col := range conf.IndexCols {
		if !s.HasColumn(col) {
			*missing = multierror.Append(*missing, errors.MissingColumnError{Featureset: src.Name, Name: col})
		}
	}
	present := make([]reshape.ResolvedField, 0, len(fields))
	for _, field := range fields {
		_, err := field.Expr.Bind(s)
		if err == nil {
			present = append(present, field)
			continue
		}
		if !isAbsent(err) {
			return nil, err
		}
		if conf.IgnoreMissingColumns {
			log.WithField("field", field.Alias).Debug("ignoring missing field")
			continue
		}
		*missing = multierror.Append(*missing, errors.MissingColumnError{Featureset: src.Name, Name: field.Alias})
	}
	if len(present) == 0 && conf.IgnoreMissingColumns {
		log.Debug("every field is missing, skipping source")
	}
	return present, nil
}

func isAbsent(err error) bool {
	var noColumn errors.NoSuchColumnError
	var noField errors.NoSuchFieldError
	return stderrors.As(err, &noColumn) || stderrors.As(err, &noField)
}

// fillOperation replaces nulls in the configured feature columns
func fillOperation(conf *JoinConf, log *logrus.Entry) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		if len(conf.FillValues) == 0 {
			return f, nil
		}
		s := f.Schema()
		values := make(map[string]any, len(conf.FillValues))
		var missing *multierror.Error
		for name, v := range conf.FillValues {
			col := UnquoteColumnName(name)
			if !s.HasColumn(col) {
				if conf.IgnoreMissingColumns {
					log.WithField("column", col).Debug("ignoring fill value for missing column")
					continue
				}
				missing = multierror.Append(missing, errors.MissingColumnError{Name: col})
				continue
			}
			values[col] = v
		}
		if missing != nil {
			missing.ErrorFormat = util.FormatMultiError
			return nil, missing
		}
		if len(values) == 0 {
			return f, nil
		}
		return f.FillNull(values)
	}
}

// broadcastOperation attaches every row of each auxiliary Frame to every row,
// as a single list-of-struct column named after the auxiliary source
func broadcastOperation(conf *JoinConf, log *logrus.Entry) reshape.FrameOperation {
	return func(f reshape.Frame) (reshape.Frame, error) {
		if len(conf.BroadcastColumns) == 0 {
			return f, nil
		}
		s := f.Schema()
		exprs := make([]reshape.Expr, 0, len(conf.BroadcastColumns))
		for _, aux := range conf.BroadcastColumns {
			if s.HasColumn(aux.Name) {
				return nil, errors.ColumnCollisionError{Featureset: aux.Name, Name: aux.Name}
			}
			e, err := broadcastExpr(aux)
			if err != nil {
				return nil, fmt.Errorf("cannot broadcast %s: %w", aux.Name, err)
			}
			log.WithField("column", aux.Name).Debug("broadcasting auxiliary table")
			exprs = append(exprs, e)
		}
		return f.WithColumns(exprs...)
	}
}

func broadcastExpr(aux Source) (reshape.Expr, error) {
	s := aux.Frame.Schema()
	names := s.ColumnNames()
	types := s.ColumnTypes()
	fields := make([]reshape.StructField, len(names))
	for i, name := range names {
		fields[i] = reshape.StructField{Name: name, Type: types[i]}
	}
	rows, err := aux.Frame.Collect()
	if err != nil {
		return reshape.Expr{}, err
	}
	elems := make([]any, len(rows))
	for i, row := range rows {
		elems[i] = reshape.StructValue(row.Values())
	}
	return reshape.TypedLit(elems, reshape.ListOf(reshape.StructOf(fields...))).Alias(aux.Name), nil
}
