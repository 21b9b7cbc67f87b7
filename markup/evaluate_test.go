package markup

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bpmflow/model/item"
)

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      map[string][]interface{}
	}{
		{
			description: "basic",
			input:       `<item name="txtName">Manfred</item>`,
			expect:      map[string][]interface{}{"txtname": {"Manfred"}},
		},
		{
			description: "single quotes with boolean type",
			input:       `<item name='txtName' type='boolean'>true</item>`,
			expect:      map[string][]interface{}{"txtname": {true}},
		},
		{
			description: "integer type",
			input:       `<item name='numValue' type='integer'>47</item>`,
			expect:      map[string][]interface{}{"numvalue": {47}},
		},
		{
			description: "double and long types",
			input:       `<item name="amount" type="double">1.5</item><item name="big" type="long">9000000000</item>`,
			expect:      map[string][]interface{}{"amount": {1.5}, "big": {int64(9000000000)}},
		},
		{
			description: "name attribute called type",
			input:       `<item name='type' >workitemdeleted</item>`,
			expect:      map[string][]interface{}{"type": {"workitemdeleted"}},
		},
		{
			description: "accumulation in encounter order",
			input:       `<item name="a">1</item><item name="a">2</item>`,
			expect:      map[string][]interface{}{"a": {"1", "2"}},
		},
		{
			description: "case-insensitive accumulation with prose",
			input:       "<dummy>nix</dummy>\n<item name=\"txtName\">Manfred</item>\n<item name=\"txtName\">Anna</item>\n<item name=\"test\">XXX</item>\n<item name=\"txtname\">Sam</item>",
			expect:      map[string][]interface{}{"txtname": {"Manfred", "Anna", "Sam"}, "test": {"XXX"}},
		},
		{
			description: "extra attributes",
			input:       `<item ignore="true" name="comment" >some data</item>`,
			expect:      map[string][]interface{}{"comment": {"some data"}, "comment.ignore": {"true"}},
		},
		{
			description: "self closing",
			input:       `<item ignore="true" name="comment" />`,
			expect:      map[string][]interface{}{"comment": {""}, "comment.ignore": {"true"}},
		},
		{
			description: "empty input",
			input:       ``,
			expect:      map[string][]interface{}{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Evaluate(tc.input)
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual.Map())
		})
	}
}

func TestEvaluate_Date(t *testing.T) {
	actual, err := Evaluate(`<item name="due" type="date">2024-03-01</item>`)
	require.NoError(t, err)
	due := actual.Time("due")
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *due)
}

func TestEvaluate_Invalid(t *testing.T) {
	testCases := []struct {
		description string
		input       string
	}{
		{description: "missing name", input: `<item noname="x">v</item>`},
		{description: "missing name after valid tag", input: `<item name="a">1</item><item ignore="true" noname="comment" >some data</item>`},
		{description: "unclosed tag", input: `<item name='txtName' >Anna<item>`},
		{description: "wrong closing tag", input: `<item ignore="true" name="comment" >some data</xitem>`},
		{description: "missing quote", input: `<item name="comment >some data</item>`},
		{description: "unquoted value", input: `<item name=comment>some data</item>`},
		{description: "missing tag end", input: `<item name="a"`},
		{description: "repeated name attribute", input: `<item name="a" name="b">1</item>`},
		{description: "stray closing tag", input: `<item name="a">1</item></item>`},
		{description: "stray closing tag between tags", input: `<item name="a">1</item></item><item name="b">2</item>`},
		{description: "closing tag only", input: `text</item>`},
		{description: "invalid integer", input: `<item name="a" type="integer">x</item>`},
		{description: "invalid date", input: `<item name="a" type="date">tomorrow</item>`},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Evaluate(tc.input)
			assert.Nil(t, actual)
			require.Error(t, err)
			var markupErr *Error
			assert.True(t, errors.As(err, &markupErr))
		})
	}
}

func TestEvaluateWith(t *testing.T) {
	source := item.New().Set("txtName", "Anna").Set("team", []string{"a", "b"})
	actual, err := EvaluateWith(`<item name="owner"><itemvalue>txtname</itemvalue></item><item name="members"><itemvalue separator=";">team</itemvalue></item>`, source)
	require.NoError(t, err)
	assert.Equal(t, "Anna", actual.String("owner"))
	assert.Equal(t, "a;b", actual.String("members"))
}

func TestParseDirective(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      *Directive
		hasError    bool
	}{
		{
			description: "all tags",
			input:       "<modelversion>1.0.0</modelversion><processid>1000</processid><activityid>10</activityid><items>namTeam</items>",
			expect:      &Directive{ModelVersion: "1.0.0", TaskID: 1000, EventID: 10, Items: []*Mapping{{Source: "namTeam", Target: "namTeam"}}},
		},
		{
			description: "optional tags and mappings",
			input:       "<activityid>20</activityid>\n<items>txtName, _orderNumber|_parentNumber</items>",
			expect:      &Directive{EventID: 20, Items: []*Mapping{{Source: "txtName", Target: "txtName"}, {Source: "_orderNumber", Target: "_parentNumber"}}},
		},
		{
			description: "empty",
			input:       "",
			expect:      &Directive{},
		},
		{
			description: "non numeric process id",
			input:       "<processid>abc</processid>",
			hasError:    true,
		},
		{
			description: "unclosed tag",
			input:       "<modelversion>1.0.0",
			hasError:    true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := ParseDirective(tc.input)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual)
		})
	}
}

func TestDirectives(t *testing.T) {
	input := `<item name="subprocess_create">
    <modelversion>1.0.0</modelversion>
    <processid>1000</processid>
    <activityid>10</activityid>
    <items>namTeam</items>
</item>
<item name="comment">ignored</item>
<item name="subprocess_create"><modelversion>2.0.0</modelversion><processid>2000</processid></item>`
	directives, err := Directives(input, "subprocess_create")
	require.NoError(t, err)
	require.Len(t, directives, 2)
	assert.Equal(t, "1.0.0", directives[0].ModelVersion)
	assert.Equal(t, 1000, directives[0].TaskID)
	assert.True(t, directives[0].HasEvent())
	assert.Equal(t, 2000, directives[1].TaskID)
	assert.False(t, directives[1].HasEvent())

	_, err = Directives(`<item name="subprocess_create"><processid>x</processid></item>`, "subprocess_create")
	assert.Error(t, err)
}
