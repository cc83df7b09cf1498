package nodeconfig

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/availproject/arbitrum-orbit-sdk/internal/rollup"
)

// Test fixtures
func testCoreContracts() rollup.CoreContracts {
	return rollup.CoreContracts{
		Rollup:                 common.HexToAddress("0x1234567890123456789012345678901234567890"),
		Inbox:                  common.HexToAddress("0x2345678901234567890123456789012345678901"),
		Outbox:                 common.HexToAddress("0x3456789012345678901234567890123456789012"),
		Bridge:                 common.HexToAddress("0x4567890123456789012345678901234567890123"),
		SequencerInbox:         common.HexToAddress("0x5678901234567890123456789012345678901234"),
		RollupEventInbox:       common.HexToAddress("0x6789012345678901234567890123456789012345"),
		ChallengeManager:       common.HexToAddress("0x7890123456789012345678901234567890123456"),
		AdminProxy:             common.HexToAddress("0x8901234567890123456789012345678901234567"),
		UpgradeExecutor:        common.HexToAddress("0x9012345678901234567890123456789012345678"),
		ValidatorUtils:         common.HexToAddress("0xa123456789012345678901234567890123456789"),
		ValidatorWalletCreator: common.HexToAddress("0x0123456789012345678901234567890123456789"),
		DeployedAtBlockNumber:  12345678,
	}
}

func testChainConfig(committee bool) *rollup.ChainConfig {
	return rollup.BuildChainConfig(&rollup.Config{
		ChainID:                   42069,
		Owner:                     common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		DataAvailabilityCommittee: committee,
	})
}

// testParams returns parameters for a chain settling on Arbitrum Sepolia
// (layer 2, Arbitrum family): no beacon endpoint needed.
func testParams() DeploymentParameters {
	return DeploymentParameters{
		ChainID:        42069,
		ChainName:      "avail-orbit-local",
		ParentChainID:  421614,
		ParentChainRPC: "https://sepolia-rollup.arbitrum.io/rpc",
		ChainConfig:    testChainConfig(false),
		CoreContracts:  testCoreContracts(),
		BatchPosterKey: "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
		ValidatorKey:   "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
		AvailSeed:      "bottom drive obey lake curtain smoke basket hold race lonely fit walk",
		AvailAppID:     7,
	}
}

func TestDerive(t *testing.T) {
	t.Run("round-trips chain identities", func(t *testing.T) {
		params := testParams()

		cfg, err := Derive(params)
		require.NoError(t, err)

		assert.Equal(t, params.ChainID, cfg.Chain.ID)
		assert.Equal(t, params.ChainName, cfg.Chain.Name)
		assert.Equal(t, params.ParentChainID, cfg.ParentChain.ID)
		assert.Equal(t, params.ParentChainRPC, cfg.ParentChain.Connection.URL)
	})

	t.Run("applies fixed operational defaults", func(t *testing.T) {
		cfg, err := Derive(testParams())
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.HTTP.Addr)
		assert.Equal(t, 8449, cfg.HTTP.Port)
		assert.Contains(t, cfg.HTTP.API, "eth")
		assert.Contains(t, cfg.HTTP.API, "arb")

		assert.True(t, cfg.Node.Sequencer)
		assert.True(t, cfg.Node.DelayedSequencer.Enable)
		assert.False(t, cfg.Node.DelayedSequencer.UseMergeFinality)
		assert.Equal(t, 1, cfg.Node.DelayedSequencer.FinalizeDistance)
		assert.Equal(t, 90000, cfg.Node.BatchPoster.MaxSize)
		assert.Equal(t, "MakeNodes", cfg.Node.Staker.Strategy)
		assert.True(t, cfg.Node.Dangerous.NoSequencerCoordinator)

		assert.Equal(t, 85000, cfg.Execution.Sequencer.MaxTxDataSize)
		assert.Equal(t, "250ms", cfg.Execution.Sequencer.MaxBlockSpeed)
		assert.True(t, cfg.Execution.Caching.Archive)

		assert.True(t, cfg.Node.Feed.Output.Enable)
		assert.Equal(t, 9644, cfg.Node.Feed.Output.Port)
		assert.True(t, cfg.Metrics)
		assert.Equal(t, 9642, cfg.MetricsServer.Port)
	})

	t.Run("strips hex marker from operator keys", func(t *testing.T) {
		cfg, err := Derive(testParams())
		require.NoError(t, err)

		assert.Equal(t,
			"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
			cfg.Node.BatchPoster.ParentChainWallet.PrivateKey)
		assert.Equal(t,
			"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
			cfg.Node.Staker.ParentChainWallet.PrivateKey)
	})

	t.Run("embeds avail seed and app id", func(t *testing.T) {
		params := testParams()

		cfg, err := Derive(params)
		require.NoError(t, err)

		assert.True(t, cfg.Node.Avail.Enable)
		assert.Equal(t, params.AvailSeed, cfg.Node.Avail.Seed)
		assert.Equal(t, uint32(7), cfg.Node.Avail.AppID)
	})

	t.Run("embeds chain info with matching identities", func(t *testing.T) {
		params := testParams()

		cfg, err := Derive(params)
		require.NoError(t, err)

		var info []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(cfg.Chain.InfoJSON), &info))
		require.Len(t, info, 1)

		assert.Equal(t, float64(params.ChainID), info[0]["chain-id"])
		assert.Equal(t, float64(params.ParentChainID), info[0]["parent-chain-id"])
		assert.Equal(t, true, info[0]["parent-chain-is-arbitrum"])
		assert.Equal(t, params.ChainName, info[0]["chain-name"])

		rollupBlock, ok := info[0]["rollup"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, params.CoreContracts.Bridge.Hex(), rollupBlock["bridge"])
		assert.Equal(t, params.CoreContracts.SequencerInbox.Hex(), rollupBlock["sequencer-inbox"])
		assert.Equal(t, float64(12345678), rollupBlock["deployed-at"])
	})

	t.Run("serializes with hyphenated keys", func(t *testing.T) {
		cfg, err := Derive(testParams())
		require.NoError(t, err)

		data, err := json.MarshalIndent(cfg, "", "  ")
		require.NoError(t, err)

		assert.Contains(t, string(data), `"parent-chain"`)
		assert.Contains(t, string(data), `"info-json"`)
		assert.Contains(t, string(data), `"batch-poster"`)
		assert.Contains(t, string(data), `"parent-chain-wallet"`)
		assert.Contains(t, string(data), `"no-sequencer-coordinator"`)
		assert.Contains(t, string(data), `"fallback-s3-service"`)
		assert.Contains(t, string(data), `"max-block-speed"`)
	})
}

func TestDeriveBeaconInvariant(t *testing.T) {
	t.Run("layer 2 parent without beacon succeeds", func(t *testing.T) {
		params := testParams()
		params.ParentChainBeaconRPC = ""

		cfg, err := Derive(params)
		require.NoError(t, err)
		assert.Nil(t, cfg.ParentChain.BlobClient)
	})

	t.Run("layer 1 parent without beacon fails", func(t *testing.T) {
		params := testParams()
		params.ParentChainID = 11155111
		params.ParentChainBeaconRPC = ""

		cfg, err := Derive(params)
		require.Error(t, err)
		assert.Nil(t, cfg)

		var missing *MissingFieldError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "parentChainBeaconRpcUrl", missing.Field)
	})

	t.Run("layer 1 parent with beacon carries it verbatim", func(t *testing.T) {
		params := testParams()
		params.ParentChainID = 11155111
		params.ParentChainBeaconRPC = "https://beacon.example"

		cfg, err := Derive(params)
		require.NoError(t, err)
		require.NotNil(t, cfg.ParentChain.BlobClient)
		assert.Equal(t, "https://beacon.example", cfg.ParentChain.BlobClient.BeaconURL)
	})

	t.Run("beacon block present on layer 2 when supplied", func(t *testing.T) {
		params := testParams()
		params.ParentChainBeaconRPC = "https://beacon.example"

		cfg, err := Derive(params)
		require.NoError(t, err)
		require.NotNil(t, cfg.ParentChain.BlobClient)
		assert.Equal(t, "https://beacon.example", cfg.ParentChain.BlobClient.BeaconURL)
	})
}

func TestDeriveBlobReaderRule(t *testing.T) {
	cases := []struct {
		name     string
		parentID uint64
		beacon   string
		disabled bool
	}{
		{"layer1 non-family keeps blob reader", 11155111, "https://beacon.example", false},
		{"layer1 local keeps blob reader", 1337, "https://beacon.example", false},
		{"layer2 family keeps blob reader", 42161, "", false},
		{"layer2 non-family disables blob reader", 8453, "", true},
		{"unknown layer2 disables blob reader", 999999, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := testParams()
			params.ParentChainID = tc.parentID
			params.ParentChainBeaconRPC = tc.beacon

			cfg, err := Derive(params)
			require.NoError(t, err)
			assert.Equal(t, tc.disabled, cfg.Node.Dangerous.DisableBlobReader)
		})
	}
}

func TestDeriveCommitteeBlock(t *testing.T) {
	t.Run("absent when committee disabled", func(t *testing.T) {
		params := testParams()
		params.ChainConfig = testChainConfig(false)

		cfg, err := Derive(params)
		require.NoError(t, err)
		assert.Nil(t, cfg.Node.DataAvailability)
	})

	t.Run("present when committee enabled", func(t *testing.T) {
		params := testParams()
		params.ChainConfig = testChainConfig(true)

		cfg, err := Derive(params)
		require.NoError(t, err)

		da := cfg.Node.DataAvailability
		require.NotNil(t, da)
		assert.True(t, da.Enable)
		assert.Equal(t, params.CoreContracts.SequencerInbox.Hex(), da.SequencerInboxAddress)
		assert.Equal(t, params.ParentChainRPC, da.ParentChainNodeURL)
		assert.Equal(t, 1, da.RPCAggregator.AssumedHonest)
	})

	t.Run("defaults the DA server host", func(t *testing.T) {
		params := testParams()
		params.ChainConfig = testChainConfig(true)
		params.DASServerURL = ""

		cfg, err := Derive(params)
		require.NoError(t, err)

		da := cfg.Node.DataAvailability
		require.NotNil(t, da)
		assert.Equal(t, []string{"http://localhost:9877"}, da.RestAggregator.URLs)
		require.Len(t, da.RPCAggregator.Backends, 1)
		assert.Equal(t, "http://localhost:9876", da.RPCAggregator.Backends[0].URL)
	})

	t.Run("uses the explicit DA server host", func(t *testing.T) {
		params := testParams()
		params.ChainConfig = testChainConfig(true)
		params.DASServerURL = "http://das.internal"

		cfg, err := Derive(params)
		require.NoError(t, err)

		da := cfg.Node.DataAvailability
		require.NotNil(t, da)
		assert.Equal(t, []string{"http://das.internal:9877"}, da.RestAggregator.URLs)
		assert.Equal(t, "http://das.internal:9876", da.RPCAggregator.Backends[0].URL)
	})
}

func TestDeriveFallbackStorage(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		params := testParams()
		params.FallbackS3 = nil

		cfg, err := Derive(params)
		require.NoError(t, err)

		fb := cfg.Node.Avail.FallbackS3
		assert.False(t, fb.Enable)
		assert.Empty(t, fb.AccessKey)
		assert.Nil(t, fb.DiscardAfterTimeout)
	})

	t.Run("disabled input stays disabled", func(t *testing.T) {
		params := testParams()
		params.FallbackS3 = &S3FallbackOptions{Enable: false}

		cfg, err := Derive(params)
		require.NoError(t, err)
		assert.False(t, cfg.Node.Avail.FallbackS3.Enable)
	})

	t.Run("enabled input copies all fields verbatim", func(t *testing.T) {
		params := testParams()
		params.FallbackS3 = &S3FallbackOptions{
			Enable:       true,
			AccessKey:    "AKIAEXAMPLE",
			SecretKey:    "secret-key-value",
			Region:       "eu-central-1",
			ObjectPrefix: "orbit/blobs/",
			Bucket:       "orbit-fallback",
		}

		cfg, err := Derive(params)
		require.NoError(t, err)

		fb := cfg.Node.Avail.FallbackS3
		assert.True(t, fb.Enable)
		assert.Equal(t, "AKIAEXAMPLE", fb.AccessKey)
		assert.Equal(t, "secret-key-value", fb.SecretKey)
		assert.Equal(t, "eu-central-1", fb.Region)
		assert.Equal(t, "orbit/blobs/", fb.ObjectPrefix)
		assert.Equal(t, "orbit-fallback", fb.Bucket)
		require.NotNil(t, fb.DiscardAfterTimeout)
		assert.False(t, *fb.DiscardAfterTimeout)
	})

	t.Run("enabled variant serializes explicit discard-after-timeout", func(t *testing.T) {
		params := testParams()
		params.FallbackS3 = &S3FallbackOptions{
			Enable:       true,
			AccessKey:    "a",
			SecretKey:    "b",
			Region:       "c",
			ObjectPrefix: "d",
			Bucket:       "e",
		}

		cfg, err := Derive(params)
		require.NoError(t, err)

		data, err := json.Marshal(cfg.Node.Avail.FallbackS3)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"discard-after-timeout":false`)
	})
}

// Scenario coverage from the derivation contract.
func TestDeriveScenarios(t *testing.T) {
	t.Run("layer 2 parent, no beacon, no committee, no fallback", func(t *testing.T) {
		params := testParams()

		cfg, err := Derive(params)
		require.NoError(t, err)

		assert.Nil(t, cfg.ParentChain.BlobClient)
		assert.Nil(t, cfg.Node.DataAvailability)
		assert.False(t, cfg.Node.Avail.FallbackS3.Enable)
	})

	t.Run("layer 1 parent, no beacon", func(t *testing.T) {
		params := testParams()
		params.ParentChainID = 1

		_, err := Derive(params)
		var missing *MissingFieldError
		require.True(t, errors.As(err, &missing))
	})

	t.Run("layer 1 parent, beacon and committee", func(t *testing.T) {
		params := testParams()
		params.ParentChainID = 1
		params.ParentChainBeaconRPC = "https://beacon.example"
		params.ChainConfig = testChainConfig(true)

		cfg, err := Derive(params)
		require.NoError(t, err)

		require.NotNil(t, cfg.ParentChain.BlobClient)
		assert.Equal(t, "https://beacon.example", cfg.ParentChain.BlobClient.BeaconURL)
		require.NotNil(t, cfg.Node.DataAvailability)
		assert.Equal(t, 1, cfg.Node.DataAvailability.RPCAggregator.AssumedHonest)
	})
}
