package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/adphone/internal/history"
	"github.com/sells-group/adphone/internal/model"
)

func sampleEntries() []model.HistoryEntry {
	ts := "2024-05-01T12:00:00Z"
	return []model.HistoryEntry{
		{
			ID:        "8f14e45f-ceea-467f-a0e6-8bb0c3b1f9a2",
			URL:       "https://www.avito.ru/moskva/telefony/iphone_15_pro_256gb_naturalnyy_titan_3456789012",
			Platform:  model.PlatformAvito,
			Phone:     "+7 (912) 345-67-89",
			Status:    model.ParseStatusSuccess,
			Timestamp: &ts,
			Cost:      15,
		},
		{
			ID:       "2",
			URL:      "https://rabota.ru/vacancy/1",
			Platform: model.PlatformRabota,
			Status:   model.ParseStatusFailed,
		},
	}
}

func TestWriteHistory_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleEntries(), "table", false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PLATFORM")
	assert.Contains(t, lines[2], "8f14e45f ")
	assert.NotContains(t, lines[2], "8f14e45f-")
	assert.Contains(t, lines[2], "+7 (912) 345-67-89")
	assert.Contains(t, lines[2], "...")
	assert.Contains(t, lines[3], "failed")
	assert.Contains(t, lines[3], "-")
}

func TestWriteHistory_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleEntries(), "json", false))

	var out struct {
		History []model.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.History, 2)
	assert.Equal(t, 15, out.History[0].Cost)
	assert.Nil(t, out.History[1].Timestamp)
	assert.NotContains(t, buf.String(), "summary")
}

func TestWriteHistory_TableStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleEntries(), "table", true))

	out := buf.String()
	assert.Contains(t, out, "Success rate:  50%")
	assert.Contains(t, out, "Total spend:   15")
	assert.Contains(t, out, "Failed:        1")
}

func TestWriteHistory_JSONStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleEntries(), "json", true))

	var out struct {
		Summary *history.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotNil(t, out.Summary)
	assert.Equal(t, history.Summary{Total: 2, Success: 1, Failed: 1, SuccessRate: 50, TotalCost: 15}, *out.Summary)
}

func TestWriteHistory_YAMLStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleEntries(), "yaml", true))

	var out struct {
		Summary history.Summary `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 50, out.Summary.SuccessRate)
	assert.Equal(t, 15, out.Summary.TotalCost)
}

func TestWriteHistory_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleEntries(), "yaml", false))

	var out struct {
		History []model.HistoryEntry `yaml:"history"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.History, 2)
	assert.Equal(t, model.PlatformAvito, out.History[0].Platform)
	assert.Equal(t, "+7 (912) 345-67-89", out.History[0].Phone)
}

func TestWriteHistory_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeHistory(&buf, sampleEntries(), "xml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "8f14e45f", truncateID("8f14e45f-ceea-467f"))
	assert.Equal(t, "short", truncateID("short"))
}
