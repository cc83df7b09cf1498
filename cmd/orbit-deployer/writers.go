package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/availproject/arbitrum-orbit-sdk/internal/nodeconfig"
	"github.com/availproject/arbitrum-orbit-sdk/internal/setupconfig"
)

// ConfigWriter handles writing the generated configuration files.
type ConfigWriter struct {
	logger *slog.Logger
	outDir string
}

// WriteAll writes both configuration documents to the output directory.
func (w *ConfigWriter) WriteAll(nodeCfg *nodeconfig.NodeConfig, setupCfg *setupconfig.Config) error {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := w.writeNodeConfig(nodeCfg); err != nil {
		return fmt.Errorf("write nodeConfig.json: %w", err)
	}

	if err := w.writeSetupConfig(setupCfg); err != nil {
		return fmt.Errorf("write orbitSetupScriptConfig.json: %w", err)
	}

	return nil
}

// writeNodeConfig writes the Nitro node configuration document.
func (w *ConfigWriter) writeNodeConfig(cfg *nodeconfig.NodeConfig) error {
	return w.writeJSON("nodeConfig.json", cfg)
}

// writeSetupConfig writes the orbit-setup-script configuration document.
func (w *ConfigWriter) writeSetupConfig(cfg *setupconfig.Config) error {
	return w.writeJSON("orbitSetupScriptConfig.json", cfg)
}

func (w *ConfigWriter) writeJSON(name string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	w.logger.Info("config written", slog.String("path", path))
	return nil
}
