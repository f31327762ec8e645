package networks

var Matic Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "matic",
	AlternativeNames:   []string{"polygon"},
	ChainID:            137,
	NativeTokenSymbol:  "POL",
	NativeTokenDecimal: 18,
	NodeVariableName:   "MATIC_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"polygon": "https://polygon-rpc.com",
	},
})
