package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"name":    {Type: TypeString},
			"urgency": {Type: TypeString, Enum: []string{"BAJA", "ALTA"}},
		},
		Required: []string{"name", "urgency"},
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid", doc: `{"name":"Ana","urgency":"ALTA"}`},
		{name: "extra fields allowed", doc: `{"name":"Ana","urgency":"BAJA","x":1}`},
		{name: "missing required", doc: `{"name":"Ana"}`, wantErr: true},
		{name: "null required", doc: `{"name":null,"urgency":"BAJA"}`, wantErr: true},
		{name: "enum violation", doc: `{"name":"Ana","urgency":"URGENTE"}`, wantErr: true},
		{name: "wrong type", doc: `{"name":42,"urgency":"BAJA"}`, wantErr: true},
		{name: "not json", doc: `Claro, aquí está el resumen`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testSchema().Validate([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(CleanJSON("```json\n{\"a\":1}\n```")))
	assert.Equal(t, `{"a":1}`, string(CleanJSON("```{\"a\":1}```")))
	assert.Equal(t, `{"a":1}`, string(CleanJSON("  {\"a\":1} ")))
}

func TestSchemaDescribe(t *testing.T) {
	assert.Equal(t, `{"name": "string", "urgency": "BAJA" | "ALTA"}`, testSchema().Describe())
}

func TestApplyOptions(t *testing.T) {
	opts := ApplyOptions(WithTemperature(0.1), WithSystemInstruction("sys"), WithWebSearch())
	assert.InDelta(t, 0.1, opts.Temperature, 0.0001)
	assert.Equal(t, "sys", opts.SystemInstruction)
	assert.True(t, opts.WebSearch)
	assert.Nil(t, opts.JSONSchema)
}
