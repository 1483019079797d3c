package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MinimalSkill(t *testing.T) {
	content := "---\nname: simple\ndescription: A simple skill\n---\n\nDo something.\n"

	fm, body, err := Parse([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "simple", fm.Name)
	assert.Equal(t, "A simple skill", fm.Description)
	assert.Equal(t, "\nDo something.\n", string(body))
}

func TestParse_NoFrontmatterReturnsRawBodyAndNoError(t *testing.T) {
	content := "# Just a heading\n\nNo fence here.\n"

	fm, body, err := Parse([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "", fm.Name)
	assert.Equal(t, content, string(body))
}

func TestParse_PreservesExtrasInOrder(t *testing.T) {
	content := "---\nname: x\nallowed-tools: Read Grep\ncontext: fork\n---\n\nbody\n"

	fm, _, err := Parse([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"allowed-tools", "context"}, fm.ExtraKeys)
	assert.Equal(t, "Read Grep", fm.Extras["allowed-tools"])
}

func TestParse_StripsUTF8BOM(t *testing.T) {
	content := "﻿---\nname: x\n---\n\nbody\n"

	fm, _, err := Parse([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "x", fm.Name)
}

func TestParse_UnterminatedFenceIsAnError(t *testing.T) {
	content := "---\nname: x\n"

	_, _, err := Parse([]byte(content))
	assert.Error(t, err)
}

func TestParse_SimpleDependsGrammar(t *testing.T) {
	content := "---\nname: x\ndepends:\n  - codex:writer@^1.2.0\n  - optional-helper\n---\n\nbody\n"

	fm, _, err := Parse([]byte(content))
	require.NoError(t, err)
	require.Len(t, fm.Depends, 2)
	assert.Equal(t, "writer", fm.Depends[0].Name)
	assert.Equal(t, "codex", fm.Depends[0].Source)
	assert.NotNil(t, fm.Depends[0].VersionReq)
	assert.Equal(t, "optional-helper", fm.Depends[1].Name)
}

func TestParse_StructuredDependsEntry(t *testing.T) {
	content := "---\nname: x\ndepends:\n  - name: writer\n    version: \">=1.0.0\"\n    optional: true\n---\n\nbody\n"

	fm, _, err := Parse([]byte(content))
	require.NoError(t, err)
	require.Len(t, fm.Depends, 1)
	assert.Equal(t, "writer", fm.Depends[0].Name)
	assert.True(t, fm.Depends[0].Optional)
}

func TestParse_InvalidDependencyFormatIsRejected(t *testing.T) {
	content := "---\nname: x\ndepends:\n  - \"not a valid name!!\"\n---\n\nbody\n"

	_, _, err := Parse([]byte(content))
	assert.Error(t, err)
}

func TestIsRecognizedKey(t *testing.T) {
	assert.True(t, IsRecognizedKey("name"))
	assert.True(t, IsRecognizedKey("depends"))
	assert.False(t, IsRecognizedKey("allowed-tools"))
}
