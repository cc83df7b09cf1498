// Package config loads deployment settings from an optional YAML file and
// the environment. Environment variables win over file values.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the full deployment configuration.
type Config struct {
	Chain       ChainConfig       `mapstructure:"chain"`
	ParentChain ParentChainConfig `mapstructure:"parent_chain"`
	Operators   OperatorsConfig   `mapstructure:"operators"`
	Avail       AvailConfig       `mapstructure:"avail"`
	DAS         DASConfig         `mapstructure:"das"`
	FallbackS3  FallbackS3Config  `mapstructure:"fallback_s3"`
	Deployer    DeployerConfig    `mapstructure:"deployer"`
	Out         OutConfig         `mapstructure:"out"`
}

// ChainConfig identifies the chain being deployed.
type ChainConfig struct {
	ID   uint64 `mapstructure:"id" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

// ParentChainConfig holds the settlement chain endpoints.
type ParentChainConfig struct {
	ID           uint64 `mapstructure:"id" validate:"required"`
	RPCURL       string `mapstructure:"rpc_url" validate:"required,url"`
	BeaconRPCURL string `mapstructure:"beacon_rpc_url" validate:"omitempty,url"`
}

// OperatorsConfig holds the operator private keys.
type OperatorsConfig struct {
	BatchPosterKey string `mapstructure:"batch_poster_key" validate:"required"`
	ValidatorKey   string `mapstructure:"validator_key" validate:"required"`
}

// AvailConfig holds the Avail DA credentials.
type AvailConfig struct {
	Seed  string `mapstructure:"seed" validate:"required"`
	AppID uint32 `mapstructure:"app_id"`
}

// DASConfig holds the optional committee DA server host override.
type DASConfig struct {
	ServerURL string `mapstructure:"server_url" validate:"omitempty,url"`

	// Committee selects AnyTrust mode for the deployed chain.
	Committee bool `mapstructure:"committee"`
}

// FallbackS3Config holds the optional fallback object storage settings. All
// five fields are required once the toggle is on.
type FallbackS3Config struct {
	Enable       bool   `mapstructure:"enable"`
	AccessKey    string `mapstructure:"access_key" validate:"required_if=Enable true"`
	SecretKey    string `mapstructure:"secret_key" validate:"required_if=Enable true"`
	Region       string `mapstructure:"region" validate:"required_if=Enable true"`
	ObjectPrefix string `mapstructure:"object_prefix" validate:"required_if=Enable true"`
	Bucket       string `mapstructure:"bucket" validate:"required_if=Enable true"`
}

// DeployerConfig holds the deployment credentials and factory address.
type DeployerConfig struct {
	Key                  string `mapstructure:"key" validate:"required"`
	RollupCreatorAddress string `mapstructure:"rollup_creator_address" validate:"required,eth_addr"`
}

// OutConfig controls where the generated documents are written.
type OutConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from the given YAML file (optional, may be empty)
// and the ORBIT_-prefixed environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("ORBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvKeys(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chain.name", "orbit-chain")
	v.SetDefault("avail.app_id", 0)
	v.SetDefault("das.committee", false)
	v.SetDefault("fallback_s3.enable", false)
	v.SetDefault("out.dir", ".")
}

// bindEnvKeys binds every key explicitly so AutomaticEnv sees them even when
// no config file mentions them.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"chain.id",
		"chain.name",
		"parent_chain.id",
		"parent_chain.rpc_url",
		"parent_chain.beacon_rpc_url",
		"operators.batch_poster_key",
		"operators.validator_key",
		"avail.seed",
		"avail.app_id",
		"das.server_url",
		"das.committee",
		"fallback_s3.enable",
		"fallback_s3.access_key",
		"fallback_s3.secret_key",
		"fallback_s3.region",
		"fallback_s3.object_prefix",
		"fallback_s3.bucket",
		"deployer.key",
		"deployer.rollup_creator_address",
		"out.dir",
	}
	for _, key := range keys {
		// BindEnv only errors on an empty key.
		_ = v.BindEnv(key)
	}
}
