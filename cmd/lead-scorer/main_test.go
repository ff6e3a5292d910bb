// cmd/lead-scorer/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rfq-lead-workers/internal/leadscoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hotRFQ = `{
	"session_id": "sess-cli",
	"category": "Metals - Non-Ferrous",
	"trade_type": "import",
	"description": "Need copper cathodes urgently, budget approved, please quote CIF Nhava Sheva",
	"quality_standards": "LME Grade A",
	"items": [{"item_name": "Copper cathode", "quantity": 200, "unit": "MT"}]
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScoreCmd_Stdin(t *testing.T) {
	out, err := run(t, hotRFQ, "score")
	require.NoError(t, err)

	var score leadscoring.LeadScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))

	var input leadscoring.RFQInput
	require.NoError(t, json.Unmarshal([]byte(hotRFQ), &input))
	assert.Equal(t, leadscoring.ScoreRFQ(input), score)
	assert.Equal(t, leadscoring.TierHot, score.LeadScore)
}

func TestScoreCmd_FileCompact(t *testing.T) {
	path := writeFile(t, "rfq.json", `{"session_id": "sess-min"}`)

	out, err := run(t, "", "score", "--file", path, "--compact")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"lead_score":"WARM"`)
}

func TestScoreCmd_RejectsInvalidPayload(t *testing.T) {
	_, err := run(t, `{"category": "Steel"}`, "score")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_id")
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, hotRFQ, "validate")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	path := writeFile(t, "bad.json", `{"session_id": "s", "trade_type": 3}`)
	out, err = run(t, "", "validate", "-f", path)
	require.Error(t, err)
	assert.Contains(t, out, "trade_type\tINVALID_TYPE")
	assert.Equal(t, "1 validation error(s)", err.Error())
}

func TestValidateCmd_MissingFile(t *testing.T) {
	_, err := run(t, "", "validate", "--file", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRegistryCmd(t *testing.T) {
	good := writeFile(t, "good.json", `{"activities": [
		{"id": "score-rfq-lead", "taskType": "score-rfq-lead", "timeout": "10s", "retries": 3}
	]}`)
	out, err := run(t, "", "registry", "--path", good)
	require.NoError(t, err)
	assert.Contains(t, out, "score-rfq-lead")
	assert.Contains(t, out, "is valid (1 activities)")

	bad := writeFile(t, "bad.json", `{"activities": [
		{"id": "a", "taskType": "score-rfq-lead"},
		{"id": "b", "taskType": "score-rfq-lead"}
	]}`)
	out, err = run(t, "", "registry", "--path", bad)
	require.Error(t, err)
	assert.Contains(t, out, "duplicate taskType score-rfq-lead")
}

func TestRegistryCmd_ShippedRegistryIsValid(t *testing.T) {
	_, err := run(t, "", "registry", "--path", filepath.Join("..", "..", "configs", "activity-registry.json"))
	assert.NoError(t, err)
}
