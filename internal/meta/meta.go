package meta

import "slices"

// OperatorType identifies one of the closed set of pipeline operators.
type OperatorType string

const (
	Filter       OperatorType = "filter"
	Sort         OperatorType = "sort"
	Aggregate    OperatorType = "aggregate"
	Tag          OperatorType = "tag"
	ColApply     OperatorType = "col_apply"
	ColAssign    OperatorType = "col_assign"
	Constant     OperatorType = "constant"
	ValueMapping OperatorType = "value_mapping"
	Formatter    OperatorType = "formatter"
)

// UIType selects the editing widget and the value conversion for a parameter.
type UIType string

const (
	UIString        UIType = "string"
	UIStringList    UIType = "string-list"
	UIMap           UIType = "map"
	UINestedMap     UIType = "nested-map"
	UIMappedString  UIType = "mapped-string"
	UIMappedBoolean UIType = "mapped-boolean"
	UISelect        UIType = "select"
	UIRadio         UIType = "radio"
	UISubAction     UIType = "sub-action"
)

// Mapped reports whether values of this kind track a sibling list via ReferenceKey.
func (u UIType) Mapped() bool {
	return u == UIMappedString || u == UIMappedBoolean
}

// OperatorMeta is the display metadata of an operator.
type OperatorMeta struct {
	Type        OperatorType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DocHint     string       `json:"docHint"`
}

// Option is one enumerated choice of a select or radio parameter.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ParamMeta describes one parameter of one operator.
type ParamMeta struct {
	Key           string   `json:"key"`
	UIType        UIType   `json:"uiType"`
	Description   string   `json:"description"`
	Placeholder   string   `json:"placeholder,omitempty"`
	HelperContent string   `json:"helperContent,omitempty"`
	Required      bool     `json:"required,omitempty"`
	Options       []Option `json:"options,omitempty"`
	ActionTypes   []string `json:"actionTypes,omitempty"`
	// ReferenceKey names the sibling list parameter this one is aligned with.
	// Only set for mapped-string and mapped-boolean parameters.
	ReferenceKey string `json:"referenceKey,omitempty"`
}

// HasOption reports whether value is one of the enumerated options.
func (p ParamMeta) HasOption(value string) bool {
	for _, o := range p.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (p ParamMeta) clone() ParamMeta {
	p.Options = slices.Clone(p.Options)
	p.ActionTypes = slices.Clone(p.ActionTypes)
	return p
}

// OperatorTypes returns every operator type in palette order.
func OperatorTypes() []OperatorType {
	return slices.Clone(operatorOrder)
}

// Valid reports whether t is a known operator type.
func (t OperatorType) Valid() bool {
	_, ok := operatorMeta[t]
	return ok
}

// Lookup returns the metadata of an operator type.
func Lookup(t OperatorType) (OperatorMeta, bool) {
	m, ok := operatorMeta[t]
	return m, ok
}

// All returns the metadata of every operator in palette order.
func All() []OperatorMeta {
	out := make([]OperatorMeta, 0, len(operatorOrder))
	for _, t := range operatorOrder {
		out = append(out, operatorMeta[t])
	}
	return out
}

// LookupParams returns the parameters of an operator in render order.
// Operators without configurable parameters yield an empty, non-nil slice;
// unknown operators yield nil.
func LookupParams(t OperatorType) []ParamMeta {
	params, ok := operatorParams[t]
	if !ok {
		return nil
	}
	out := make([]ParamMeta, 0, len(params))
	for _, p := range params {
		out = append(out, p.clone())
	}
	return out
}

// Param returns the metadata of a single operator parameter.
func Param(t OperatorType, key string) (ParamMeta, bool) {
	for _, p := range operatorParams[t] {
		if p.Key == key {
			return p.clone(), true
		}
	}
	return ParamMeta{}, false
}

// AggregateActionParams returns the sub-schema of one aggregate action.
func AggregateActionParams() []ParamMeta {
	out := make([]ParamMeta, 0, len(aggregateActionParams))
	for _, p := range aggregateActionParams {
		out = append(out, p.clone())
	}
	return out
}

// AggregateActionParam returns the metadata of one aggregate action field.
func AggregateActionParam(key string) (ParamMeta, bool) {
	for _, p := range aggregateActionParams {
		if p.Key == key {
			return p.clone(), true
		}
	}
	return ParamMeta{}, false
}
