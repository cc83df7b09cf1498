package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/availproject/arbitrum-orbit-sdk/internal/nodeconfig"
	"github.com/availproject/arbitrum-orbit-sdk/internal/setupconfig"
)

func TestConfigWriterWriteAll(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "generated")
	writer := &ConfigWriter{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		outDir: outDir,
	}

	nodeCfg := &nodeconfig.NodeConfig{}
	nodeCfg.Chain.ID = 42069
	nodeCfg.Chain.Name = "avail-orbit-local"

	setupCfg := &setupconfig.Config{ChainID: 42069, ChainName: "avail-orbit-local"}

	require.NoError(t, writer.WriteAll(nodeCfg, setupCfg))

	t.Run("writes nodeConfig.json", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(outDir, "nodeConfig.json"))
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &doc))

		chain, ok := doc["chain"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(42069), chain["id"])
	})

	t.Run("writes orbitSetupScriptConfig.json", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(outDir, "orbitSetupScriptConfig.json"))
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &doc))

		assert.Equal(t, float64(42069), doc["chainId"])
		assert.Equal(t, "avail-orbit-local", doc["chainName"])
	})
}
