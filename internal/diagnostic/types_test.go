package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticsString(t *testing.T) {
	var d Diagnostics
	d.AddWarning(CodeMissingNode, "node is absent", "Simple", "root.Items")
	d.AddInfo("", "note", "", "")

	assert.Equal(t, "[Simple] root.Items: [missing-node] node is absent", d.Warnings[0].String())
	assert.Equal(t, "note", d.Infos[0].String())
	assert.Equal(t, []string{CodeMissingNode}, d.Codes())
	assert.NoError(t, d.Error())

	d.AddError("x", "first", "", "a")
	d.AddError("y", "second", "", "b")
	assert.EqualError(t, d.Error(), "a: [x] first; b: [y] second")

	assert.True(t, d.HasErrors())
}

func TestDiagnosticSuggestions(t *testing.T) {
	var d Diagnostics
	d.AddError(CodeMissingCaster, "no caster", "Derived", "root.Base", "DerivedOne", "DerivedTwo")

	assert.Equal(t, []string{"DerivedOne", "DerivedTwo"}, d.Errors[0].Suggestions)
	assert.Equal(t,
		"[Derived] root.Base: [missing-caster] no caster (did you mean DerivedOne, DerivedTwo?)",
		d.Errors[0].String())
	assert.Empty(t, d.Codes(), "errors are not listed with the warning codes")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
