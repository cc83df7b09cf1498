package rollup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/availproject/arbitrum-orbit-sdk/internal/wallet"
)

// rollupCreatorABI covers the single factory entrypoint and event this tool
// needs from RollupCreator.
const rollupCreatorABI = `[
  {
    "type": "function",
    "name": "createRollup",
    "stateMutability": "payable",
    "inputs": [
      {
        "name": "params",
        "type": "tuple",
        "components": [
          {"name": "chainId", "type": "uint256"},
          {"name": "chainConfig", "type": "string"},
          {"name": "owner", "type": "address"},
          {"name": "batchPoster", "type": "address"},
          {"name": "validators", "type": "address[]"},
          {"name": "confirmPeriodBlocks", "type": "uint256"},
          {"name": "maxDataSize", "type": "uint256"},
          {"name": "nativeToken", "type": "address"}
        ]
      }
    ],
    "outputs": [{"name": "", "type": "address"}]
  },
  {
    "type": "event",
    "name": "RollupCreated",
    "inputs": [
      {"name": "rollupAddress", "type": "address", "indexed": true},
      {"name": "nativeToken", "type": "address", "indexed": true},
      {"name": "inboxAddress", "type": "address", "indexed": false},
      {"name": "outbox", "type": "address", "indexed": false},
      {"name": "rollupEventInbox", "type": "address", "indexed": false},
      {"name": "challengeManager", "type": "address", "indexed": false},
      {"name": "adminProxy", "type": "address", "indexed": false},
      {"name": "sequencerInbox", "type": "address", "indexed": false},
      {"name": "bridge", "type": "address", "indexed": false},
      {"name": "upgradeExecutor", "type": "address", "indexed": false},
      {"name": "validatorUtils", "type": "address", "indexed": false},
      {"name": "validatorWalletCreator", "type": "address", "indexed": false}
    ]
  }
]`

// createRollupParams mirrors the createRollup tuple layout.
type createRollupParams struct {
	ChainId             *big.Int
	ChainConfig         string
	Owner               common.Address
	BatchPoster         common.Address
	Validators          []common.Address
	ConfirmPeriodBlocks *big.Int
	MaxDataSize         *big.Int
	NativeToken         common.Address
}

// rollupCreatedEvent receives the RollupCreated fields; UnpackLog fills the
// indexed fields from topics and the rest from the log data.
type rollupCreatedEvent struct {
	RollupAddress          common.Address
	NativeToken            common.Address
	InboxAddress           common.Address
	Outbox                 common.Address
	RollupEventInbox       common.Address
	ChallengeManager       common.Address
	AdminProxy             common.Address
	SequencerInbox         common.Address
	Bridge                 common.Address
	UpgradeExecutor        common.Address
	ValidatorUtils         common.Address
	ValidatorWalletCreator common.Address
}

// Creator submits rollup creation transactions to a RollupCreator factory.
type Creator struct {
	client      *ethclient.Client
	creatorAddr common.Address
	logger      *slog.Logger
	abi         abi.ABI
	contract    *bind.BoundContract
}

// NewCreator creates a Creator bound to a deployed RollupCreator factory.
func NewCreator(client *ethclient.Client, creatorAddr common.Address, logger *slog.Logger) (*Creator, error) {
	parsed, err := abi.JSON(strings.NewReader(rollupCreatorABI))
	if err != nil {
		return nil, fmt.Errorf("parse RollupCreator ABI: %w", err)
	}

	return &Creator{
		client:      client,
		creatorAddr: creatorAddr,
		logger:      logger,
		abi:         parsed,
		contract:    bind.NewBoundContract(creatorAddr, parsed, client, client, client),
	}, nil
}

// Create deploys the rollup and returns the core contract addresses together
// with the chain-config record embedded on chain. Failures propagate to the
// caller; no result is returned on error.
func (c *Creator) Create(ctx context.Context, deployerKey string, cfg *Config) (*DeployResult, error) {
	chainConfig := BuildChainConfig(cfg)

	chainConfigJSON, err := json.Marshal(chainConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal chain config: %w", err)
	}

	key, err := crypto.HexToECDSA(wallet.StripHexPrefix(deployerKey))
	if err != nil {
		return nil, fmt.Errorf("parse deployer key: %w", err)
	}

	parentChainID := new(big.Int).SetUint64(cfg.ParentChainID)
	opts, err := bind.NewKeyedTransactorWithChainID(key, parentChainID)
	if err != nil {
		return nil, fmt.Errorf("create transactor: %w", err)
	}
	opts.Context = ctx

	params := createRollupParams{
		ChainId:             new(big.Int).SetUint64(cfg.ChainID),
		ChainConfig:         string(chainConfigJSON),
		Owner:               cfg.Owner,
		BatchPoster:         cfg.BatchPoster,
		Validators:          []common.Address{cfg.Validator},
		ConfirmPeriodBlocks: cfg.confirmPeriodBlocks(),
		MaxDataSize:         cfg.maxDataSize(),
		NativeToken:         cfg.NativeToken,
	}

	c.logger.Info("submitting createRollup",
		slog.Uint64("chain_id", cfg.ChainID),
		slog.String("rollup_creator", c.creatorAddr.Hex()),
	)

	tx, err := c.contract.Transact(opts, "createRollup", params)
	if err != nil {
		return nil, fmt.Errorf("send createRollup: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for createRollup receipt: %w", err)
	}
	if receipt.Status == 0 {
		return nil, fmt.Errorf("createRollup reverted in tx %s", tx.Hash().Hex())
	}

	contracts, err := c.parseRollupCreated(receipt.Logs, receipt.BlockNumber.Uint64())
	if err != nil {
		return nil, err
	}

	c.logger.Info("rollup created",
		slog.String("rollup", contracts.Rollup.Hex()),
		slog.String("inbox", contracts.Inbox.Hex()),
		slog.String("bridge", contracts.Bridge.Hex()),
		slog.Uint64("block", contracts.DeployedAtBlockNumber),
	)

	return &DeployResult{
		CoreContracts:   contracts,
		ChainConfig:     chainConfig,
		TransactionHash: tx.Hash(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
	}, nil
}

// parseRollupCreated extracts the core contract addresses from the
// RollupCreated event in the creation receipt.
func (c *Creator) parseRollupCreated(logs []*types.Log, blockNumber uint64) (*CoreContracts, error) {
	event := c.abi.Events["RollupCreated"]

	for _, lg := range logs {
		if len(lg.Topics) < 3 || lg.Topics[0] != event.ID {
			continue
		}

		var ev rollupCreatedEvent
		if err := c.contract.UnpackLog(&ev, "RollupCreated", *lg); err != nil {
			return nil, fmt.Errorf("unpack RollupCreated: %w", err)
		}

		return &CoreContracts{
			Rollup:                 common.BytesToAddress(lg.Topics[1].Bytes()),
			NativeToken:            common.BytesToAddress(lg.Topics[2].Bytes()),
			Inbox:                  ev.InboxAddress,
			Outbox:                 ev.Outbox,
			RollupEventInbox:       ev.RollupEventInbox,
			ChallengeManager:       ev.ChallengeManager,
			AdminProxy:             ev.AdminProxy,
			SequencerInbox:         ev.SequencerInbox,
			Bridge:                 ev.Bridge,
			UpgradeExecutor:        ev.UpgradeExecutor,
			ValidatorUtils:         ev.ValidatorUtils,
			ValidatorWalletCreator: ev.ValidatorWalletCreator,
			DeployedAtBlockNumber:  blockNumber,
		}, nil
	}

	return nil, fmt.Errorf("no RollupCreated event in receipt")
}
