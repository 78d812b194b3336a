package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNode_MarshalJSON_Ordered(t *testing.T) {
	node := Fields(
		F("stages", Type(KindArray), MinSize(1), Template(stageSchema())),
		F("name", Required(), Type(KindString)),
		F("power", From(0, 50, "max"), Unknown("unit", "W")),
	)

	data, err := json.Marshal(node)
	require.NoError(t, err)

	want := `{"stages":{"type":"Array","minSize":1,"template":{"time_sec":{"type":"Integer","min":0,"max":1000,"required":true}}},` +
		`"name":{"required":true,"type":"String"},` +
		`"power":{"from":[0,50,"max"],"unit":"W"}}`
	assert.Equal(t, want, string(data))
}

func TestNode_MarshalJSON_NilAndEmpty(t *testing.T) {
	var nilNode *Node
	data, err := nilNode.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = Fields().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestNode_JSONRoundTrip(t *testing.T) {
	original, err := Parse([]byte(cookProfileYAML))
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestNode_YAMLRoundTrip(t *testing.T) {
	original, err := Parse([]byte(cookProfileYAML))
	require.NoError(t, err)

	out, err := yaml.Marshal(original)
	require.NoError(t, err)

	decoded, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, original.Names(), decoded.Names())

	want, _ := json.Marshal(original)
	got, _ := json.Marshal(decoded)
	assert.JSONEq(t, string(want), string(got))
}

func TestNode_EmbeddedInDocuments(t *testing.T) {
	type profile struct {
		Name   string `json:"name" yaml:"name"`
		Schema *Node  `json:"schema" yaml:"schema"`
	}

	var fromJSON profile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","schema":{"b":{"type":"String"},"a":{"required":true}}}`), &fromJSON))
	require.NotNil(t, fromJSON.Schema)
	assert.Equal(t, []string{"b", "a"}, fromJSON.Schema.Names())

	var fromYAML profile
	require.NoError(t, yaml.Unmarshal([]byte("name: p\nschema:\n  b: {type: String}\n  a: {required: true}\n"), &fromYAML))
	require.NotNil(t, fromYAML.Schema)
	assert.Equal(t, []string{"b", "a"}, fromYAML.Schema.Names())

	var bad profile
	err := json.Unmarshal([]byte(`{"schema":{"a":{"min":"x"}}}`), &bad)
	require.Error(t, err)
}

func TestNode_UnmarshalJSON_Null(t *testing.T) {
	n := Fields(F("a", Required()))
	require.NoError(t, n.UnmarshalJSON([]byte("null")))
	assert.Equal(t, 0, n.Len())

	var nilNode *Node
	assert.Error(t, nilNode.UnmarshalJSON([]byte("{}")))
}

func TestNode_Clone(t *testing.T) {
	inner := stageSchema()
	choices := []any{1, 2}
	original := Fields(F("stages", Template(inner)), F("n", From(choices...)))

	clone := original.Clone()
	inner.set(F("extra", Required()))
	choices[0] = 99

	rules, _ := clone.Field("stages")
	tmpl, _ := rules.Get(RuleTemplate)
	assert.Equal(t, []string{"time_sec"}, tmpl.Arg.(TemplateArg).Node.Names())

	n, _ := clone.Field("n")
	from, _ := n.Get(RuleFrom)
	assert.Equal(t, ChoicesArg{1, 2}, from.Arg)
}

func TestNode_Accessors(t *testing.T) {
	var nilNode *Node
	assert.Equal(t, 0, nilNode.Len())
	assert.Nil(t, nilNode.Names())
	assert.Nil(t, nilNode.Fields())
	_, ok := nilNode.Field("a")
	assert.False(t, ok)

	node := stagesSchema()
	fields := node.Fields()
	fields[0].Name = "changed"
	assert.Equal(t, []string{"stages"}, node.Names())
}
