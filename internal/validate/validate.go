// Package validate checks a pipeline against the operator metadata before
// it is exported or saved. Only unknown operators, missing required values
// and out-of-range choices are errors; everything else is a warning.
package validate

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/expr-lang/expr"

	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/internal/param"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding about one step (or the whole pipeline when Step is -1).
type Issue struct {
	Severity Severity `json:"severity"`
	Step     int      `json:"step"`
	StepID   string   `json:"stepId,omitempty"`
	Key      string   `json:"key,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	where := "pipeline"
	if i.Step >= 0 {
		where = fmt.Sprintf("step %d", i.Step+1)
		if i.Key != "" {
			where += "." + i.Key
		}
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, where, i.Message)
}

// Report collects the issues of one validation run.
type Report struct {
	Issues []Issue `json:"issues"`
}

// Valid reports whether the pipeline has no errors. Warnings do not count.
func (r Report) Valid() bool {
	return !slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Severity == SeverityError })
}

// Errors returns only the error-level issues.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// conditionKeys hold boolean row expressions.
var conditionKeys = map[string]bool{"condition": true, "conditions": true}

// columnKeys hold lists of input column names.
var columnKeys = map[string]bool{"by": true, "on": true}

// Pipeline validates steps. columns are the detected input columns; when
// empty, column references are not checked.
func Pipeline(steps []model.PipelineStep, columns []string) Report {
	r := &reporter{report: Report{Issues: []Issue{}}}
	if len(steps) == 0 {
		r.add(SeverityWarning, -1, "", "", "pipeline has no steps")
	}
	known := map[string]bool{}
	for _, c := range columns {
		known[c] = true
	}
	for i, st := range steps {
		r.step(i, st, known)
	}
	return r.report
}

type reporter struct {
	report Report
}

func (r *reporter) add(sev Severity, idx int, id, key, format string, args ...any) {
	r.report.Issues = append(r.report.Issues, Issue{
		Severity: sev,
		Step:     idx,
		StepID:   id,
		Key:      key,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *reporter) step(idx int, st model.PipelineStep, columns map[string]bool) {
	if !st.Type.Valid() {
		r.add(SeverityError, idx, st.ID, "", "unknown operator type %q", st.Type)
		return
	}
	metas := meta.LookupParams(st.Type)
	declared := map[string]bool{}

	for _, p := range metas {
		declared[p.Key] = true
		v, present := st.Params[p.Key]

		if p.Required && (!present || isEmpty(p, v)) {
			r.add(SeverityError, idx, st.ID, p.Key, "missing required parameter")
			continue
		}
		if !present {
			continue
		}

		switch p.UIType {
		case meta.UISelect, meta.UIRadio:
			if s := param.AsString(v); s != "" && !p.HasOption(s) {
				r.add(SeverityError, idx, st.ID, p.Key, "%q is not one of %s", s, optionList(p))
			}
		case meta.UISubAction:
			r.actions(idx, st.ID, param.AsActions(v), columns)
		}

		if got, want, ok := param.Alignment(p, st.Params); ok && got != want {
			r.add(SeverityWarning, idx, st.ID, p.Key,
				"has %d entries but %s has %d", got, p.ReferenceKey, want)
		}

		if conditionKeys[p.Key] {
			for _, c := range conditions(p, v) {
				if err := checkCondition(c); err != nil {
					r.add(SeverityWarning, idx, st.ID, p.Key, "condition %q does not parse: %v", c, err)
				}
			}
		}

		if columnKeys[p.Key] && p.UIType == meta.UIStringList {
			r.columns(idx, st.ID, p.Key, param.AsStringList(v), columns)
		}
	}

	var extra []string
	for k := range st.Params {
		if !declared[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		r.add(SeverityWarning, idx, st.ID, k, "parameter is not used by %s", st.Type)
	}
}

func (r *reporter) actions(idx int, id string, actions []model.AggregateAction, columns map[string]bool) {
	for n, a := range actions {
		key := fmt.Sprintf("actions[%d]", n)
		method, _ := meta.AggregateActionParam("method")
		output, _ := meta.AggregateActionParam("summary_output")

		switch {
		case a.Method == "":
			r.add(SeverityError, idx, id, key+".method", "missing required parameter")
		case !method.HasOption(a.Method):
			r.add(SeverityError, idx, id, key+".method", "%q is not one of %s", a.Method, optionList(method))
		}
		if len(a.On) == 0 {
			r.add(SeverityError, idx, id, key+".on", "missing required parameter")
		}
		if a.SummaryOutput != "" && !output.HasOption(a.SummaryOutput) {
			r.add(SeverityError, idx, id, key+".summary_output", "%q is not one of %s",
				a.SummaryOutput, optionList(output))
		}
		if len(a.Rename) > 0 && len(a.Rename) != len(a.On) {
			r.add(SeverityWarning, idx, id, key+".rename",
				"has %d entries but on has %d", len(a.Rename), len(a.On))
		}
		r.columns(idx, id, key+".on", a.On, columns)
	}
}

func (r *reporter) columns(idx int, id, key string, refs []string, columns map[string]bool) {
	if len(columns) == 0 {
		return
	}
	for _, c := range refs {
		if !columns[c] {
			r.add(SeverityWarning, idx, id, key, "column %q is not in the input", c)
		}
	}
}

func isEmpty(p meta.ParamMeta, v any) bool {
	switch p.UIType {
	case meta.UIString, meta.UISelect, meta.UIRadio:
		return strings.TrimSpace(param.AsString(v)) == ""
	case meta.UIStringList, meta.UIMappedString:
		return len(param.AsStringList(v)) == 0
	case meta.UIMappedBoolean:
		return len(param.AsBoolList(v)) == 0
	case meta.UIMap:
		return len(param.AsStringMap(v)) == 0
	case meta.UINestedMap:
		return len(param.AsNestedMap(v)) == 0
	case meta.UISubAction:
		return len(param.AsActions(v)) == 0
	}
	return v == nil
}

func conditions(p meta.ParamMeta, v any) []string {
	if p.UIType == meta.UIString {
		if s := strings.TrimSpace(param.AsString(v)); s != "" {
			return []string{s}
		}
		return nil
	}
	return param.AsStringList(v)
}

// checkCondition compiles a row expression without an environment, so any
// identifier is accepted and only syntax is checked.
func checkCondition(src string) error {
	_, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsBool())
	return err
}

func optionList(p meta.ParamMeta) string {
	vals := make([]string, len(p.Options))
	for i, o := range p.Options {
		vals[i] = o.Value
	}
	return strings.Join(vals, ", ")
}
