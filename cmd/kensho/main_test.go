package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/kensho/i18n"
)

const validJSON = `{"id":"550e8400-e29b-41d4-a716-446655440000","name":"Taro","email":"taro@example.com","age":30,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestValidate_OK(t *testing.T) {
	p := writeTemp(t, "user.json", validJSON)
	code, out, _ := run(t, "validate", p)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, p+": ok")
}

func TestValidate_ArrayWithInvalidRecord(t *testing.T) {
	body := `[` + validJSON + `,{"id":"invalid-uuid","name":"山田","email":"x","age":30,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}]`
	p := writeTemp(t, "users.json", body)
	code, out, _ := run(t, "validate", p)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, p+"#0: ok")
	assert.Contains(t, out, p+"#1: invalid")
	assert.Contains(t, out, "/id invalid_format")
	assert.Contains(t, out, "/name too_short")
}

func TestValidate_FailFast(t *testing.T) {
	p := writeTemp(t, "bad.json", `{"id":"invalid-uuid","name":"山田","email":"x","age":30,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}`)
	code, out, _ := run(t, "validate", "--fail-fast", p)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "/email invalid_format")
	assert.NotContains(t, out, "/name")
}

func TestValidate_DuplicateKeys(t *testing.T) {
	p := writeTemp(t, "dup.json", `{"name":"Taro","name":"Jiro"}`)
	code, out, _ := run(t, "validate", p)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "/name duplicate_key")
}

func TestValidate_YAML(t *testing.T) {
	p := writeTemp(t, "user.yaml", `
id: 550e8400-e29b-41d4-a716-446655440000
name: 山田太郎
email: yamada@example.jp
age: 42
gender: other
createdAt: 2024-01-15T09:30:00Z
`)
	code, out, _ := run(t, "validate", p)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, p+": ok")

	// explicit format wins over the extension
	q := writeTemp(t, "user.txt", "name: Taro\n")
	code, _, _ = run(t, "validate", "--format", "yaml", q)
	assert.Equal(t, exitInvalid, code)
}

func TestValidate_JapaneseMessages(t *testing.T) {
	p := writeTemp(t, "bad.json", `{}`)
	code, out, _ := run(t, "--lang", "ja", "validate", p)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "必須プロパティが不足しています")
}

func TestValidate_Errors(t *testing.T) {
	code, _, errOut := run(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "missing.json")

	code, _, _ = run(t, "validate")
	assert.Equal(t, exitError, code)

	p := writeTemp(t, "user.json", validJSON)
	code, _, _ = run(t, "validate", "--format", "xml", p)
	assert.Equal(t, exitError, code)

	code, _, _ = run(t, "--lang", "fr", "validate", p)
	assert.Equal(t, exitError, code)
}

func TestValidate_ConfigFile(t *testing.T) {
	cfg := writeTemp(t, "kensho.yaml", "duplicate_keys: ignore\n")
	p := writeTemp(t, "dup.json", `{"id":"550e8400-e29b-41d4-a716-446655440000","name":"Jiro","name":"Taro","email":"taro@example.com","age":30,"gender":"male","createdAt":"2024-01-15T09:30:00Z"}`)
	code, out, _ := run(t, "--config", cfg, "validate", p)
	assert.Equal(t, exitOK, code, out)
}

func TestSchema(t *testing.T) {
	code, out, _ := run(t, "schema")
	require.Equal(t, exitOK, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "User", doc["title"])
	assert.Equal(t, "object", doc["type"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "createdAt")
}
