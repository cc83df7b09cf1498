package nodeconfig

import (
	"encoding/json"
	"fmt"

	"github.com/availproject/arbitrum-orbit-sdk/internal/chains"
	"github.com/availproject/arbitrum-orbit-sdk/internal/wallet"
)

// Fixed operational defaults. These encode an opinionated single-sequencer
// profile and are identical across all derivations.
const (
	httpAddr       = "0.0.0.0"
	httpPort       = 8449
	httpVHosts     = "*"
	httpCorsdomain = "*"

	batchPosterMaxSize = 90000

	stakerStrategy = "MakeNodes"

	delayedSequencerFinalizeDistance = 1

	sequencerMaxTxDataSize = 85000
	sequencerMaxBlockSpeed = "250ms"

	feedOutputAddr = "0.0.0.0"
	feedOutputPort = 9644

	metricsAddr = "0.0.0.0"
	metricsPort = 9642
)

// Committee DA server defaults. The REST and RPC ports are fixed suffixes
// appended to whichever host is in effect.
const (
	defaultDASHost = "http://localhost"
	dasRESTPort    = ":9877"
	dasRPCPort     = ":9876"

	dasAssumedHonest = 1
)

var httpAPIModules = []string{"eth", "net", "web3", "arb", "debug"}

// Derive builds the node configuration document for a deployed rollup.
//
// It fails with a MissingFieldError when the parent chain settles on layer 1
// and no beacon endpoint was supplied; layer-1-settling chains cannot omit
// blob-data access. The check runs before any assembly so no partial
// document is ever produced.
func Derive(params DeploymentParameters) (*NodeConfig, error) {
	layer := chains.LayerOf(params.ParentChainID)
	if layer == chains.Layer1 && params.ParentChainBeaconRPC == "" {
		return nil, NewMissingFieldError("parentChainBeaconRpcUrl")
	}

	// True only when the parent chain neither serves blobs itself (layer 1)
	// nor exposes batch data the Arbitrum way. Recomputed per call.
	disableBlobReader := layer != chains.Layer1 && !chains.IsArbitrum(params.ParentChainID)

	infoJSON, err := chainInfoJSON(params)
	if err != nil {
		return nil, err
	}

	cfg := &NodeConfig{
		Chain: ChainSection{
			ID:       params.ChainID,
			Name:     params.ChainName,
			InfoJSON: infoJSON,
		},
		ParentChain: ParentChainSection{
			ID:         params.ParentChainID,
			Connection: ConnectionSection{URL: params.ParentChainRPC},
		},
		HTTP: HTTPSection{
			Addr:       httpAddr,
			Port:       httpPort,
			VHosts:     httpVHosts,
			Corsdomain: httpCorsdomain,
			API:        httpAPIModules,
		},
		Node: NodeSection{
			Sequencer: true,
			DelayedSequencer: DelayedSequencerConfig{
				Enable:           true,
				UseMergeFinality: false,
				FinalizeDistance: delayedSequencerFinalizeDistance,
			},
			BatchPoster: BatchPosterConfig{
				Enable:  true,
				MaxSize: batchPosterMaxSize,
				ParentChainWallet: WalletConfig{
					PrivateKey: wallet.StripHexPrefix(params.BatchPosterKey),
				},
			},
			Staker: StakerConfig{
				Enable:   true,
				Strategy: stakerStrategy,
				ParentChainWallet: WalletConfig{
					PrivateKey: wallet.StripHexPrefix(params.ValidatorKey),
				},
			},
			Dangerous: DangerousConfig{
				NoSequencerCoordinator: true,
				DisableBlobReader:      disableBlobReader,
			},
			Avail: AvailConfig{
				Enable:     true,
				Seed:       params.AvailSeed,
				AppID:      params.AvailAppID,
				FallbackS3: S3FallbackConfig{Enable: false},
			},
			Feed: FeedConfig{
				Output: FeedOutputConfig{
					Enable: true,
					Addr:   feedOutputAddr,
					Port:   feedOutputPort,
				},
			},
		},
		Execution: ExecutionSection{
			ForwardingTarget: "",
			Sequencer: ExecutionSequencerConfig{
				Enable:        true,
				MaxTxDataSize: sequencerMaxTxDataSize,
				MaxBlockSpeed: sequencerMaxBlockSpeed,
			},
			Caching: CachingConfig{Archive: true},
		},
		Metrics: true,
		MetricsServer: MetricsServerSection{
			Addr: metricsAddr,
			Port: metricsPort,
		},
	}

	if params.ParentChainBeaconRPC != "" {
		cfg.ParentChain.BlobClient = &BlobClientSection{
			BeaconURL: params.ParentChainBeaconRPC,
		}
	}

	if params.ChainConfig != nil && params.ChainConfig.Arbitrum.DataAvailabilityCommittee {
		cfg.Node.DataAvailability = committeeConfig(params)
	}

	if params.FallbackS3 != nil && params.FallbackS3.Enable {
		cfg.Node.Avail.FallbackS3 = enabledFallbackS3(params.FallbackS3)
	}

	return cfg, nil
}

// committeeConfig builds the data-availability-committee sub-block.
func committeeConfig(params DeploymentParameters) *DataAvailabilityConfig {
	host := params.DASServerURL
	if host == "" {
		host = defaultDASHost
	}

	return &DataAvailabilityConfig{
		Enable:                true,
		SequencerInboxAddress: params.CoreContracts.SequencerInbox.Hex(),
		ParentChainNodeURL:    params.ParentChainRPC,
		RestAggregator: RestAggregatorConfig{
			Enable: true,
			URLs:   []string{host + dasRESTPort},
		},
		RPCAggregator: RPCAggregatorConfig{
			Enable:        true,
			AssumedHonest: dasAssumedHonest,
			Backends: []RPCAggregatorBackend{
				{URL: host + dasRPCPort},
			},
		},
	}
}

// enabledFallbackS3 builds the enabled fallback-storage variant. Blobs are
// kept past the challenge window, so discard-after-timeout is pinned false.
func enabledFallbackS3(opts *S3FallbackOptions) S3FallbackConfig {
	discard := false
	return S3FallbackConfig{
		Enable:              true,
		AccessKey:           opts.AccessKey,
		SecretKey:           opts.SecretKey,
		Region:              opts.Region,
		ObjectPrefix:        opts.ObjectPrefix,
		Bucket:              opts.Bucket,
		DiscardAfterTimeout: &discard,
	}
}

// chainInfoJSON serializes the single-entry chain-info array embedded in the
// chain section. Chain ids are copied from the parameters verbatim.
func chainInfoJSON(params DeploymentParameters) (string, error) {
	info := []chainInfoEntry{
		{
			ChainID:               params.ChainID,
			ParentChainID:         params.ParentChainID,
			ParentChainIsArbitrum: chains.IsArbitrum(params.ParentChainID),
			ChainName:             params.ChainName,
			ChainConfig:           params.ChainConfig,
			Rollup: rollupInfo{
				Bridge:                 params.CoreContracts.Bridge.Hex(),
				Inbox:                  params.CoreContracts.Inbox.Hex(),
				SequencerInbox:         params.CoreContracts.SequencerInbox.Hex(),
				Rollup:                 params.CoreContracts.Rollup.Hex(),
				ValidatorUtils:         params.CoreContracts.ValidatorUtils.Hex(),
				ValidatorWalletCreator: params.CoreContracts.ValidatorWalletCreator.Hex(),
				DeployedAt:             params.CoreContracts.DeployedAtBlockNumber,
			},
		},
	}

	data, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("marshal chain info: %w", err)
	}
	return string(data), nil
}
