package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName_CollapsesUnsafeCharacters(t *testing.T) {
	name, err := SanitizeName("Code Review v2!!")
	require.NoError(t, err)
	assert.Equal(t, "Code_Review_v2", name)
}

func TestSanitizeName_RejectsEmpty(t *testing.T) {
	_, err := SanitizeName("   ")
	assert.Error(t, err)
}

func TestSanitizeName_RejectsPathSeparators(t *testing.T) {
	_, err := SanitizeName("foo/bar")
	assert.Error(t, err)
}

func TestSanitizeName_RejectsParentDirectoryComponents(t *testing.T) {
	_, err := SanitizeName("../../etc/passwd")
	assert.Error(t, err)
}

func TestFieldSupport_Supports(t *testing.T) {
	fs := FieldSupport{Skills: true, Commands: false}
	assert.True(t, fs.Supports(FieldSkills))
	assert.False(t, fs.Supports(FieldCommands))
	assert.False(t, fs.Supports(Field("bogus")))
}
