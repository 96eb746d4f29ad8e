package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiSchemaParseReturnsHandleObject(t *testing.T) {
	v, err := builtins["schemaParse"].Call([]Value{NewString("person: name string!, age number")}, NewHost())
	require.NoError(t, err)
	require.Equal(t, Object, v.Type())
	_, present := v.Obj().Get("__schemaHandle")
	assert.True(t, present)
}

func TestBiSchemaParseInvalidSourceIsNullAndLogged(t *testing.T) {
	var logged string
	host := NewHost()
	host.LogFn = func(text string) { logged = text }
	v, err := builtins["schemaParse"].Call([]Value{NewString("not a schema line")}, host)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.NotEmpty(t, logged)
}

func TestBiSchemaValidateConformingObject(t *testing.T) {
	handle, err := builtins["schemaParse"].Call([]Value{NewString("person: name string!, age number")}, NewHost())
	require.NoError(t, err)

	obj := NewObject()
	obj.Obj().Set("name", NewString("alice"))
	obj.Obj().Set("age", NewNumber(30))

	msg, err := builtins["schemaValidate"].Call([]Value{handle, NewString("person"), obj}, NewHost())
	require.NoError(t, err)
	assert.True(t, msg.IsNull())
}

func TestBiSchemaValidateMissingRequiredFieldReturnsMessage(t *testing.T) {
	handle, err := builtins["schemaParse"].Call([]Value{NewString("person: name string!")}, NewHost())
	require.NoError(t, err)

	obj := NewObject()
	msg, err := builtins["schemaValidate"].Call([]Value{handle, NewString("person"), obj}, NewHost())
	require.NoError(t, err)
	require.Equal(t, String, msg.Type())
	assert.NotEmpty(t, msg.Str())
}

func TestBiSchemaValidateUnknownTypeNameIsNullAndLogged(t *testing.T) {
	handle, err := builtins["schemaParse"].Call([]Value{NewString("person: name string!")}, NewHost())
	require.NoError(t, err)

	var logged string
	host := NewHost()
	host.LogFn = func(text string) { logged = text }
	msg, err := builtins["schemaValidate"].Call([]Value{handle, NewString("nonexistent"), NewObject()}, host)
	require.NoError(t, err)
	assert.True(t, msg.IsNull())
	assert.NotEmpty(t, logged)
}

func TestBiSchemaTypeModelDescribesDefinitionLanguage(t *testing.T) {
	v, err := builtins["schemaTypeModel"].Call(nil, nil)
	require.NoError(t, err)
	require.Equal(t, Object, v.Type())
	_, present := v.Obj().Get("fieldTypes")
	assert.True(t, present)
}

func TestBiSchemaTypeModelKeyOrderIsDeterministic(t *testing.T) {
	v, err := builtins["schemaTypeModel"].Call(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fieldTypes", "syntax", "required"}, v.Obj().Keys())
}

func TestBiSchemaValidateTypeModelValidSource(t *testing.T) {
	v, err := builtins["schemaValidateTypeModel"].Call([]Value{NewString("person: name string!")}, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestBiSchemaValidateTypeModelInvalidSourceReturnsMessage(t *testing.T) {
	v, err := builtins["schemaValidateTypeModel"].Call([]Value{NewString("not a schema line")}, nil)
	require.NoError(t, err)
	require.Equal(t, String, v.Type())
	assert.NotEmpty(t, v.Str())
}
