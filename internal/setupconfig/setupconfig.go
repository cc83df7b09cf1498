// Package setupconfig builds the companion setup-script configuration
// document consumed by the orbit-setup-script tooling. Unlike the node
// configuration this document is flat and uses the camelCase keys the
// script expects.
package setupconfig

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/availproject/arbitrum-orbit-sdk/internal/rollup"
	"github.com/availproject/arbitrum-orbit-sdk/internal/wallet"
)

// minL2BaseFee is the floor child-chain base fee in wei (0.1 gwei).
const minL2BaseFee = 100000000

// Parameters is the input record for building a setup-script config.
type Parameters struct {
	ChainID        uint64
	ChainName      string
	ParentChainID  uint64
	ParentChainRPC string

	Owner common.Address

	CoreContracts rollup.CoreContracts

	// Operator credentials (hex private keys, 0x marker optional). The
	// setup script wants addresses, so these are derived, never embedded.
	BatchPosterKey string
	ValidatorKey   string
}

// Config is the setup-script configuration document. The one hyphenated
// exception among the camelCase keys is parent-chain-node-url, which the
// script reads under that name.
type Config struct {
	NetworkFeeReceiver         string `json:"networkFeeReceiver"`
	InfrastructureFeeCollector string `json:"infrastructureFeeCollector"`
	Staker                     string `json:"staker"`
	BatchPoster                string `json:"batchPoster"`
	ChainOwner                 string `json:"chainOwner"`
	ChainID                    uint64 `json:"chainId"`
	ChainName                  string `json:"chainName"`
	MinL2BaseFee               uint64 `json:"minL2BaseFee"`
	ParentChainID              uint64 `json:"parentChainId"`
	ParentChainNodeURL         string `json:"parent-chain-node-url"`

	Utils                  string `json:"utils"`
	Rollup                 string `json:"rollup"`
	Inbox                  string `json:"inbox"`
	NativeToken            string `json:"nativeToken"`
	Outbox                 string `json:"outbox"`
	RollupEventInbox       string `json:"rollupEventInbox"`
	ChallengeManager       string `json:"challengeManager"`
	AdminProxy             string `json:"adminProxy"`
	SequencerInbox         string `json:"sequencerInbox"`
	Bridge                 string `json:"bridge"`
	UpgradeExecutor        string `json:"upgradeExecutor"`
	ValidatorUtils         string `json:"validatorUtils"`
	ValidatorWalletCreator string `json:"validatorWalletCreator"`
	DeployedAtBlockNumber  uint64 `json:"deployedAtBlockNumber"`

	Deployment DeploymentMeta `json:"_deployment"`
}

// DeploymentMeta records provenance for the generated document.
type DeploymentMeta struct {
	ID          string `json:"id"`
	Generator   string `json:"generator"`
	GeneratedAt string `json:"generatedAt"`
}

// Build assembles the setup-script config from deployment results. Operator
// addresses are derived from the supplied private keys; the chain owner
// collects both fee streams.
func Build(params Parameters) (*Config, error) {
	batchPoster, err := wallet.AddressFromKey(params.BatchPosterKey)
	if err != nil {
		return nil, fmt.Errorf("derive batch poster address: %w", err)
	}

	staker, err := wallet.AddressFromKey(params.ValidatorKey)
	if err != nil {
		return nil, fmt.Errorf("derive staker address: %w", err)
	}

	owner := params.Owner.Hex()
	contracts := params.CoreContracts

	return &Config{
		NetworkFeeReceiver:         owner,
		InfrastructureFeeCollector: owner,
		Staker:                     staker.Hex(),
		BatchPoster:                batchPoster.Hex(),
		ChainOwner:                 owner,
		ChainID:                    params.ChainID,
		ChainName:                  params.ChainName,
		MinL2BaseFee:               minL2BaseFee,
		ParentChainID:              params.ParentChainID,
		ParentChainNodeURL:         params.ParentChainRPC,

		Utils:                  contracts.ValidatorUtils.Hex(),
		Rollup:                 contracts.Rollup.Hex(),
		Inbox:                  contracts.Inbox.Hex(),
		NativeToken:            contracts.NativeToken.Hex(),
		Outbox:                 contracts.Outbox.Hex(),
		RollupEventInbox:       contracts.RollupEventInbox.Hex(),
		ChallengeManager:       contracts.ChallengeManager.Hex(),
		AdminProxy:             contracts.AdminProxy.Hex(),
		SequencerInbox:         contracts.SequencerInbox.Hex(),
		Bridge:                 contracts.Bridge.Hex(),
		UpgradeExecutor:        contracts.UpgradeExecutor.Hex(),
		ValidatorUtils:         contracts.ValidatorUtils.Hex(),
		ValidatorWalletCreator: contracts.ValidatorWalletCreator.Hex(),
		DeployedAtBlockNumber:  contracts.DeployedAtBlockNumber,

		Deployment: DeploymentMeta{
			ID:          uuid.NewString(),
			Generator:   "orbit-deployer",
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
