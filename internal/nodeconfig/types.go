// Package nodeconfig derives the Nitro node configuration document from
// rollup deployment results and operator parameters. Derivation is a pure
// function of its inputs; the returned document is owned by the caller.
package nodeconfig

import (
	"github.com/availproject/arbitrum-orbit-sdk/internal/rollup"
)

// DeploymentParameters is the full input record for a derivation. All fields
// are assumed well-shaped by the loader; the engine owns only the layer-1
// beacon-endpoint invariant.
type DeploymentParameters struct {
	// Chain identity
	ChainID   uint64
	ChainName string

	// Parent chain identity and endpoints
	ParentChainID        uint64
	ParentChainRPC       string
	ParentChainBeaconRPC string // required when the parent chain is layer 1

	// Deployment outputs
	ChainConfig   *rollup.ChainConfig
	CoreContracts rollup.CoreContracts

	// Operator credentials (hex private keys, 0x marker optional)
	BatchPosterKey string
	ValidatorKey   string

	// Avail DA parameters
	AvailSeed  string
	AvailAppID uint32

	// Optional explicit DA server host for committee mode
	DASServerURL string

	// Optional fallback object storage
	FallbackS3 *S3FallbackOptions
}

// S3FallbackOptions carries the fallback object-storage toggle and fields.
// When Enable is true all five fields must be populated; the loader enforces
// this before the engine runs.
type S3FallbackOptions struct {
	Enable       bool
	AccessKey    string
	SecretKey    string
	Region       string
	ObjectPrefix string
	Bucket       string
}

// NodeConfig is the derived node configuration document. Field naming uses
// the hyphenated lowercase keys Nitro expects.
type NodeConfig struct {
	Chain         ChainSection         `json:"chain"`
	ParentChain   ParentChainSection   `json:"parent-chain"`
	HTTP          HTTPSection          `json:"http"`
	Node          NodeSection          `json:"node"`
	Execution     ExecutionSection     `json:"execution"`
	Metrics       bool                 `json:"metrics"`
	MetricsServer MetricsServerSection `json:"metrics-server"`
}

// MetricsServerSection holds the metrics scrape endpoint.
type MetricsServerSection struct {
	Addr string `json:"addr"`
	Port int    `json:"port"`
}

// ChainSection identifies the chain and embeds its serialized chain-info.
type ChainSection struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	InfoJSON string `json:"info-json"`
}

// ParentChainSection holds the parent chain connection settings.
type ParentChainSection struct {
	ID         uint64             `json:"id"`
	Connection ConnectionSection  `json:"connection"`
	BlobClient *BlobClientSection `json:"blob-client,omitempty"`
}

// ConnectionSection holds RPC connection settings.
type ConnectionSection struct {
	URL string `json:"url"`
}

// BlobClientSection holds the beacon endpoint for EIP-4844 blob reads.
// Present iff a beacon endpoint was supplied.
type BlobClientSection struct {
	BeaconURL string `json:"beacon-url"`
}

// HTTPSection holds the HTTP RPC surface.
type HTTPSection struct {
	Addr       string   `json:"addr"`
	Port       int      `json:"port"`
	VHosts     string   `json:"vhosts"`
	Corsdomain string   `json:"corsdomain"`
	API        []string `json:"api"`
}

// NodeSection holds node-role settings.
type NodeSection struct {
	Sequencer        bool                    `json:"sequencer"`
	DelayedSequencer DelayedSequencerConfig  `json:"delayed-sequencer"`
	BatchPoster      BatchPosterConfig       `json:"batch-poster"`
	Staker           StakerConfig            `json:"staker"`
	Dangerous        DangerousConfig         `json:"dangerous"`
	DataAvailability *DataAvailabilityConfig `json:"data-availability,omitempty"`
	Avail            AvailConfig             `json:"avail"`
	Feed             FeedConfig              `json:"feed"`
}

// FeedConfig holds the sequencer feed relay settings.
type FeedConfig struct {
	Output FeedOutputConfig `json:"output"`
}

// FeedOutputConfig holds the feed broadcast endpoint.
type FeedOutputConfig struct {
	Enable bool   `json:"enable"`
	Addr   string `json:"addr"`
	Port   int    `json:"port"`
}

// DelayedSequencerConfig holds delayed-sequencer settings.
type DelayedSequencerConfig struct {
	Enable           bool `json:"enable"`
	UseMergeFinality bool `json:"use-merge-finality"`
	FinalizeDistance int  `json:"finalize-distance"`
}

// BatchPosterConfig holds batch poster settings.
type BatchPosterConfig struct {
	Enable            bool         `json:"enable"`
	MaxSize           int          `json:"max-size"`
	ParentChainWallet WalletConfig `json:"parent-chain-wallet"`
}

// StakerConfig holds staker/validator settings.
type StakerConfig struct {
	Enable            bool         `json:"enable"`
	Strategy          string       `json:"strategy"`
	ParentChainWallet WalletConfig `json:"parent-chain-wallet"`
}

// WalletConfig embeds an operator private key, hex marker stripped.
type WalletConfig struct {
	PrivateKey string `json:"private-key"`
}

// DangerousConfig holds operational overrides.
type DangerousConfig struct {
	NoSequencerCoordinator bool `json:"no-sequencer-coordinator"`
	DisableBlobReader      bool `json:"disable-blob-reader"`
}

// DataAvailabilityConfig holds the data-availability-committee settings.
// Present iff the chain config marks the committee enabled.
type DataAvailabilityConfig struct {
	Enable                bool                 `json:"enable"`
	SequencerInboxAddress string               `json:"sequencer-inbox-address"`
	ParentChainNodeURL    string               `json:"parent-chain-node-url"`
	RestAggregator        RestAggregatorConfig `json:"rest-aggregator"`
	RPCAggregator         RPCAggregatorConfig  `json:"rpc-aggregator"`
}

// RestAggregatorConfig holds the committee REST read endpoints.
type RestAggregatorConfig struct {
	Enable bool     `json:"enable"`
	URLs   []string `json:"urls"`
}

// RPCAggregatorConfig holds the committee write quorum settings.
type RPCAggregatorConfig struct {
	Enable        bool                   `json:"enable"`
	AssumedHonest int                    `json:"assumed-honest"`
	Backends      []RPCAggregatorBackend `json:"backends"`
}

// RPCAggregatorBackend is a single committee write endpoint.
type RPCAggregatorBackend struct {
	URL string `json:"url"`
}

// AvailConfig holds the Avail DA layer parameters.
type AvailConfig struct {
	Enable     bool             `json:"enable"`
	Seed       string           `json:"seed"`
	AppID      uint32           `json:"app-id"`
	FallbackS3 S3FallbackConfig `json:"fallback-s3-service"`
}

// S3FallbackConfig is the fallback object-storage sub-block. It starts
// disabled; the enabled variant carries all five fields and an explicit
// discard-after-timeout false.
type S3FallbackConfig struct {
	Enable              bool   `json:"enable"`
	AccessKey           string `json:"access-key,omitempty"`
	SecretKey           string `json:"secret-key,omitempty"`
	Region              string `json:"region,omitempty"`
	ObjectPrefix        string `json:"object-prefix,omitempty"`
	Bucket              string `json:"bucket,omitempty"`
	DiscardAfterTimeout *bool  `json:"discard-after-timeout,omitempty"`
}

// ExecutionSection holds execution and sequencing parameters.
type ExecutionSection struct {
	ForwardingTarget string                   `json:"forwarding-target"`
	Sequencer        ExecutionSequencerConfig `json:"sequencer"`
	Caching          CachingConfig            `json:"caching"`
}

// ExecutionSequencerConfig holds sequencing cadence and size limits.
type ExecutionSequencerConfig struct {
	Enable        bool   `json:"enable"`
	MaxTxDataSize int    `json:"max-tx-data-size"`
	MaxBlockSpeed string `json:"max-block-speed"`
}

// CachingConfig holds execution-layer caching settings.
type CachingConfig struct {
	Archive bool `json:"archive"`
}

// chainInfoEntry is one entry of the serialized chain-info array embedded in
// the chain section.
type chainInfoEntry struct {
	ChainID               uint64              `json:"chain-id"`
	ParentChainID         uint64              `json:"parent-chain-id"`
	ParentChainIsArbitrum bool                `json:"parent-chain-is-arbitrum"`
	ChainName             string              `json:"chain-name"`
	ChainConfig           *rollup.ChainConfig `json:"chain-config"`
	Rollup                rollupInfo          `json:"rollup"`
}

// rollupInfo lists the core contract addresses in chain-info.
type rollupInfo struct {
	Bridge                 string `json:"bridge"`
	Inbox                  string `json:"inbox"`
	SequencerInbox         string `json:"sequencer-inbox"`
	Rollup                 string `json:"rollup"`
	ValidatorUtils         string `json:"validator-utils"`
	ValidatorWalletCreator string `json:"validator-wallet-creator"`
	DeployedAt             uint64 `json:"deployed-at"`
}
