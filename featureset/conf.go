package featureset

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-sif/reshape"
	errors "github.com/go-sif/reshape/errors"
	"gopkg.in/yaml.v3"
)

// Conf is a featureset join job, as read from a YAML document such as
//
//	index_cols: [id]
//	fill_values:
//	  "`feature.df2@data2.nested.field4`": 0
//	ignore_missing_columns: false
//	variables:
//	  df1:
//	    data1:
//	      nested: [field1, field2]
//	  df2:
//	    data2:
//	      nested: [field3, field4]
//
// Sources lists the keys of variables in declaration order.
type Conf struct {
	IndexCols            []string
	FillValues           map[string]any
	IgnoreMissingColumns bool
	Sources              []string
	Variables            map[string]reshape.FieldSpec
}

type yamlConf struct {
	IndexCols            []string       `yaml:"index_cols"`
	FillValues           map[string]any `yaml:"fill_values"`
	IgnoreMissingColumns bool           `yaml:"ignore_missing_columns"`
	Variables            yaml.Node      `yaml:"variables"`
}

// ParseConf decodes a featureset join job from YAML
func ParseConf(data []byte) (*Conf, error) {
	var raw yamlConf
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidSpecError{Reason: err.Error()}
	}
	conf := &Conf{
		IndexCols:            raw.IndexCols,
		FillValues:           raw.FillValues,
		IgnoreMissingColumns: raw.IgnoreMissingColumns,
		Variables:            make(map[string]reshape.FieldSpec),
	}
	if raw.Variables.Kind != yaml.MappingNode {
		return nil, errors.InvalidSpecError{Reason: "variables must be a mapping from source names to field specifications"}
	}
	content := raw.Variables.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value
		if _, exists := conf.Variables[name]; exists {
			return nil, errors.InvalidSpecError{Reason: fmt.Sprintf("variables for %s are defined more than once", name)}
		}
		spec, err := reshape.FieldSpecFromYAMLNode(content[i+1])
		if err != nil {
			return nil, fmt.Errorf("variables for %s: %w", name, err)
		}
		conf.Sources = append(conf.Sources, name)
		conf.Variables[name] = spec
	}
	return conf, nil
}

// LoadConf reads a featureset join job from a YAML file
func LoadConf(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConf(data)
}

// JoinConf returns the JoinConf described by this Conf, with the given auxiliary Frames
func (c *Conf) JoinConf(broadcast ...Source) *JoinConf {
	return &JoinConf{
		IndexCols:            c.IndexCols,
		FillValues:           c.FillValues,
		BroadcastColumns:     broadcast,
		IgnoreMissingColumns: c.IgnoreMissingColumns,
	}
}

// Order arranges Frames into Sources, following the declaration order of this
// Conf's variables. Frames without variables are appended afterwards, sorted by name.
func (c *Conf) Order(frames map[string]reshape.Frame) ([]Source, error) {
	sources := make([]Source, 0, len(frames))
	used := make(map[string]bool, len(frames))
	for _, name := range c.Sources {
		f, ok := frames[name]
		if !ok {
			if c.IgnoreMissingColumns {
				continue
			}
			return nil, errors.MissingColumnError{Featureset: name, Name: "source"}
		}
		sources = append(sources, Source{Name: name, Frame: f})
		used[name] = true
	}
	var rest []string
	for name := range frames {
		if !used[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		sources = append(sources, Source{Name: name, Frame: frames[name]})
	}
	return sources, nil
}

// Run orders frames with Order, and joins them with Join
func (c *Conf) Run(frames map[string]reshape.Frame, broadcast ...Source) (reshape.Frame, error) {
	sources, err := c.Order(frames)
	if err != nil {
		return nil, err
	}
	return Join(sources, c.Variables, c.JoinConf(broadcast...))
}
