// Package rollup drives Orbit rollup creation through the RollupCreator
// factory contract and carries the deployment results the configuration
// derivation consumes.
package rollup

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Default deployment parameters.
const (
	DefaultConfirmPeriodBlocks = 45818  // ~1 week on Ethereum
	DefaultMaxDataSize         = 117964 // ~115KB max batch size

	initialArbOSVersion = 32
)

// Config contains all parameters for creating an Orbit rollup.
type Config struct {
	// Chain configuration
	ChainID   uint64 `json:"chainId"`
	ChainName string `json:"chainName"`

	// Parent chain configuration
	ParentChainID  uint64 `json:"parentChainId"`
	ParentChainRPC string `json:"parentChainRpc"`

	// Ownership and operators
	Owner       common.Address `json:"owner"`
	BatchPoster common.Address `json:"batchPoster"`
	Validator   common.Address `json:"validator"`

	// DataAvailabilityCommittee selects AnyTrust mode; false is plain rollup
	// (or an external DA provider driven by node configuration).
	DataAvailabilityCommittee bool `json:"dataAvailabilityCommittee"`

	// Optional parameters with defaults
	ConfirmPeriodBlocks uint64         `json:"confirmPeriodBlocks,omitempty"`
	MaxDataSize         uint64         `json:"maxDataSize,omitempty"`
	NativeToken         common.Address `json:"nativeToken,omitempty"`
}

// CoreContracts contains addresses of all deployed core contracts.
type CoreContracts struct {
	Rollup                 common.Address `json:"rollup"`
	Inbox                  common.Address `json:"inbox"`
	Outbox                 common.Address `json:"outbox"`
	Bridge                 common.Address `json:"bridge"`
	SequencerInbox         common.Address `json:"sequencerInbox"`
	RollupEventInbox       common.Address `json:"rollupEventInbox"`
	ChallengeManager       common.Address `json:"challengeManager"`
	AdminProxy             common.Address `json:"adminProxy"`
	UpgradeExecutor        common.Address `json:"upgradeExecutor"`
	ValidatorUtils         common.Address `json:"validatorUtils"`
	ValidatorWalletCreator common.Address `json:"validatorWalletCreator"`
	NativeToken            common.Address `json:"nativeToken"`
	DeployedAtBlockNumber  uint64         `json:"deployedAtBlockNumber"`
}

// DeployResult is the result of a rollup creation.
type DeployResult struct {
	CoreContracts   *CoreContracts `json:"coreContracts"`
	ChainConfig     *ChainConfig   `json:"chainConfig"`
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     uint64         `json:"blockNumber"`
}

// ChainConfig is the on-chain chain-configuration record embedded in the
// rollup at creation and echoed into chain-info for the node.
type ChainConfig struct {
	ChainID             uint64       `json:"chainId"`
	HomesteadBlock      uint64       `json:"homesteadBlock"`
	DAOForkBlock        *uint64      `json:"daoForkBlock"`
	DAOForkSupport      bool         `json:"daoForkSupport"`
	EIP150Block         uint64       `json:"eip150Block"`
	EIP155Block         uint64       `json:"eip155Block"`
	EIP158Block         uint64       `json:"eip158Block"`
	ByzantiumBlock      uint64       `json:"byzantiumBlock"`
	ConstantinopleBlock uint64       `json:"constantinopleBlock"`
	PetersburgBlock     uint64       `json:"petersburgBlock"`
	IstanbulBlock       uint64       `json:"istanbulBlock"`
	MuirGlacierBlock    uint64       `json:"muirGlacierBlock"`
	BerlinBlock         uint64       `json:"berlinBlock"`
	LondonBlock         uint64       `json:"londonBlock"`
	Clique              CliqueParams `json:"clique"`
	Arbitrum            ArbOSParams  `json:"arbitrum"`
}

// CliqueParams is carried for geth compatibility; Nitro ignores it.
type CliqueParams struct {
	Period uint64 `json:"period"`
	Epoch  uint64 `json:"epoch"`
}

// ArbOSParams holds the ArbOS-specific chain parameters.
type ArbOSParams struct {
	EnableArbOS               bool           `json:"EnableArbOS"`
	AllowDebugPrecompiles     bool           `json:"AllowDebugPrecompiles"`
	DataAvailabilityCommittee bool           `json:"DataAvailabilityCommittee"`
	InitialArbOSVersion       uint64         `json:"InitialArbOSVersion"`
	InitialChainOwner         common.Address `json:"InitialChainOwner"`
	GenesisBlockNum           uint64         `json:"GenesisBlockNum"`
}

// BuildChainConfig creates the chain-config record for a rollup creation.
func BuildChainConfig(cfg *Config) *ChainConfig {
	return &ChainConfig{
		ChainID:        cfg.ChainID,
		DAOForkSupport: true,
		Arbitrum: ArbOSParams{
			EnableArbOS:               true,
			AllowDebugPrecompiles:     false,
			DataAvailabilityCommittee: cfg.DataAvailabilityCommittee,
			InitialArbOSVersion:       initialArbOSVersion,
			InitialChainOwner:         cfg.Owner,
			GenesisBlockNum:           0,
		},
	}
}

// confirmPeriodBlocks returns the configured confirm period or the default.
func (c *Config) confirmPeriodBlocks() *big.Int {
	if c.ConfirmPeriodBlocks != 0 {
		return new(big.Int).SetUint64(c.ConfirmPeriodBlocks)
	}
	return big.NewInt(DefaultConfirmPeriodBlocks)
}

// maxDataSize returns the configured max batch size or the default.
func (c *Config) maxDataSize() *big.Int {
	if c.MaxDataSize != 0 {
		return new(big.Int).SetUint64(c.MaxDataSize)
	}
	return big.NewInt(DefaultMaxDataSize)
}
