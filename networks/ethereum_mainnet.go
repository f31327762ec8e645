package networks

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "mainnet",
	AlternativeNames:   []string{"ethereum"},
	ChainID:            1,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-llamarpc":   "https://eth.llamarpc.com",
		"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
	},
})
