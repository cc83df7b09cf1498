// orbit-deployer deploys an Avail-backed Orbit rollup through the
// RollupCreator factory and generates the node and setup-script
// configuration documents for it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/availproject/arbitrum-orbit-sdk/internal/config"
	"github.com/availproject/arbitrum-orbit-sdk/internal/nodeconfig"
	"github.com/availproject/arbitrum-orbit-sdk/internal/rollup"
	"github.com/availproject/arbitrum-orbit-sdk/internal/setupconfig"
	"github.com/availproject/arbitrum-orbit-sdk/internal/wallet"
)

const deploymentTimeout = 30 * time.Minute

// deployRunner orchestrates the deploy-then-generate pipeline.
type deployRunner struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	configPath string
	outDir     string
}

func main() {
	configPath, outDir := parseFlags()

	runner := newDeployRunner(configPath, outDir)
	defer runner.cancel()
	runner.setupSignalHandler()

	if err := runner.run(); err != nil {
		runner.logger.Error("deployment failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags() (configPath, outDir string) {
	configFlag := flag.String("config", "", "Path to YAML config file (optional, env vars take precedence)")
	outFlag := flag.String("out-dir", "", "Directory to write generated configs (overrides ORBIT_OUT_DIR)")
	flag.Parse()
	return *configFlag, *outFlag
}

func newDeployRunner(configPath, outDir string) *deployRunner {
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &deployRunner{
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		configPath: configPath,
		outDir:     outDir,
	}
}

func (r *deployRunner) setupSignalHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		r.logger.Info("received interrupt signal, cancelling")
		r.cancel()
	}()
}

// run executes the 4-step deployment pipeline.
func (r *deployRunner) run() error {
	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if r.outDir == "" {
		r.outDir = cfg.Out.Dir
	}

	result, err := r.deployRollup(cfg)
	if err != nil {
		return fmt.Errorf("deploy rollup: %w", err)
	}

	nodeCfg, setupCfg, err := r.generateConfigs(cfg, result)
	if err != nil {
		return fmt.Errorf("generate configs: %w", err)
	}

	if err := r.writeConfigs(nodeCfg, setupCfg); err != nil {
		return fmt.Errorf("write configs: %w", err)
	}

	r.logger.Info("deployment complete", slog.String("out_dir", r.outDir))
	return nil
}

func (r *deployRunner) loadConfig() (*config.Config, error) {
	r.logger.Info("1. Loading configuration")

	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}

	r.logger.Info("configuration loaded",
		slog.Uint64("chain_id", cfg.Chain.ID),
		slog.String("chain_name", cfg.Chain.Name),
		slog.Uint64("parent_chain_id", cfg.ParentChain.ID),
	)
	return cfg, nil
}

func (r *deployRunner) deployRollup(cfg *config.Config) (*rollup.DeployResult, error) {
	r.logger.Info("2. Deploying rollup contracts")

	client, err := ethclient.DialContext(r.ctx, cfg.ParentChain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect to parent chain: %w", err)
	}
	defer client.Close()

	owner, err := wallet.AddressFromKey(cfg.Deployer.Key)
	if err != nil {
		return nil, fmt.Errorf("derive deployer address: %w", err)
	}
	batchPoster, err := wallet.AddressFromKey(cfg.Operators.BatchPosterKey)
	if err != nil {
		return nil, fmt.Errorf("derive batch poster address: %w", err)
	}
	validator, err := wallet.AddressFromKey(cfg.Operators.ValidatorKey)
	if err != nil {
		return nil, fmt.Errorf("derive validator address: %w", err)
	}

	creator, err := rollup.NewCreator(client, common.HexToAddress(cfg.Deployer.RollupCreatorAddress), r.logger)
	if err != nil {
		return nil, err
	}

	deployCtx, deployCancel := context.WithTimeout(r.ctx, deploymentTimeout)
	defer deployCancel()

	// Failures here abort the pipeline; no configs are generated for a
	// deployment that did not complete.
	return creator.Create(deployCtx, cfg.Deployer.Key, &rollup.Config{
		ChainID:                   cfg.Chain.ID,
		ChainName:                 cfg.Chain.Name,
		ParentChainID:             cfg.ParentChain.ID,
		ParentChainRPC:            cfg.ParentChain.RPCURL,
		Owner:                     owner,
		BatchPoster:               batchPoster,
		Validator:                 validator,
		DataAvailabilityCommittee: cfg.DAS.Committee,
	})
}

func (r *deployRunner) generateConfigs(cfg *config.Config, result *rollup.DeployResult) (*nodeconfig.NodeConfig, *setupconfig.Config, error) {
	r.logger.Info("3. Generating configuration documents")

	var fallbackS3 *nodeconfig.S3FallbackOptions
	if cfg.FallbackS3.Enable {
		fallbackS3 = &nodeconfig.S3FallbackOptions{
			Enable:       true,
			AccessKey:    cfg.FallbackS3.AccessKey,
			SecretKey:    cfg.FallbackS3.SecretKey,
			Region:       cfg.FallbackS3.Region,
			ObjectPrefix: cfg.FallbackS3.ObjectPrefix,
			Bucket:       cfg.FallbackS3.Bucket,
		}
	}

	nodeCfg, err := nodeconfig.Derive(nodeconfig.DeploymentParameters{
		ChainID:              cfg.Chain.ID,
		ChainName:            cfg.Chain.Name,
		ParentChainID:        cfg.ParentChain.ID,
		ParentChainRPC:       cfg.ParentChain.RPCURL,
		ParentChainBeaconRPC: cfg.ParentChain.BeaconRPCURL,
		ChainConfig:          result.ChainConfig,
		CoreContracts:        *result.CoreContracts,
		BatchPosterKey:       cfg.Operators.BatchPosterKey,
		ValidatorKey:         cfg.Operators.ValidatorKey,
		AvailSeed:            cfg.Avail.Seed,
		AvailAppID:           cfg.Avail.AppID,
		DASServerURL:         cfg.DAS.ServerURL,
		FallbackS3:           fallbackS3,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("derive node config: %w", err)
	}

	owner, err := wallet.AddressFromKey(cfg.Deployer.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("derive owner address: %w", err)
	}

	setupCfg, err := setupconfig.Build(setupconfig.Parameters{
		ChainID:        cfg.Chain.ID,
		ChainName:      cfg.Chain.Name,
		ParentChainID:  cfg.ParentChain.ID,
		ParentChainRPC: cfg.ParentChain.RPCURL,
		Owner:          owner,
		CoreContracts:  *result.CoreContracts,
		BatchPosterKey: cfg.Operators.BatchPosterKey,
		ValidatorKey:   cfg.Operators.ValidatorKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build setup config: %w", err)
	}

	return nodeCfg, setupCfg, nil
}

func (r *deployRunner) writeConfigs(nodeCfg *nodeconfig.NodeConfig, setupCfg *setupconfig.Config) error {
	r.logger.Info("4. Writing configuration files")

	writer := &ConfigWriter{
		logger: r.logger,
		outDir: r.outDir,
	}

	return writer.WriteAll(nodeCfg, setupCfg)
}
