// Package chains classifies parent chains by settlement layer and
// rollup-stack family. The classification is data, not behavior: fixed
// tables keyed by chain id, recomputed on demand.
package chains

// Layer is the settlement layer of a parent chain.
type Layer uint8

const (
	// Layer1 is a base settlement chain (Ethereum mainnet or a testnet).
	Layer1 Layer = 1
	// Layer2 is a chain that is itself a rollup.
	Layer2 Layer = 2
)

// layer1Chains are base settlement chains. Chains settling here need blob
// (EIP-4844) access and therefore a beacon endpoint.
var layer1Chains = map[uint64]struct{}{
	1:        {}, // Ethereum mainnet
	17000:    {}, // Holesky
	11155111: {}, // Sepolia
	1337:     {}, // local devnet
}

// arbitrumChains are members of the Arbitrum rollup stack. A Nitro node can
// read batch data from these without a blob client.
var arbitrumChains = map[uint64]struct{}{
	42161:  {}, // Arbitrum One
	42170:  {}, // Arbitrum Nova
	421614: {}, // Arbitrum Sepolia
	412346: {}, // Nitro local testnode
}

// LayerOf classifies a parent chain id. Unknown ids classify as Layer2: the
// table never silently assumes blob access for a chain it does not know.
func LayerOf(chainID uint64) Layer {
	if _, ok := layer1Chains[chainID]; ok {
		return Layer1
	}
	return Layer2
}

// IsArbitrum reports whether the chain id belongs to the Arbitrum stack.
func IsArbitrum(chainID uint64) bool {
	_, ok := arbitrumChains[chainID]
	return ok
}
