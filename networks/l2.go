package networks

var ArbitrumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "arbitrum",
	AlternativeNames:   []string{},
	ChainID:            42161,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "ARBITRUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"arbitrum": "https://arb1.arbitrum.io/rpc",
	},
})

var OptimismMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "optimism",
	AlternativeNames:   []string{},
	ChainID:            10,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "OPTIMISM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"optimism": "https://mainnet.optimism.io",
	},
})

var BaseMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "base",
	AlternativeNames:   []string{},
	ChainID:            8453,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "BASE_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-base": "https://mainnet.base.org",
	},
})
