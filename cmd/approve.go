package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/allowance/approve"
	"github.com/tranvictor/allowance/config"
	"github.com/tranvictor/allowance/symbol"
	"github.com/tranvictor/allowance/util/reader"
)

// approveOutput is the --json form of a resolved screen.
type approveOutput struct {
	Screen string         `json:"screen"`
	Origin string         `json:"origin"`
	Token  string         `json:"token"`
	Host   string         `json:"host"`
	Symbol string         `json:"symbol"`
	Error  string         `json:"error,omitempty"`
	Prompt approve.Prompt `json:"prompt"`
}

func parseCalldata(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode --data: %w", err)
	}
	return data, nil
}

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Show the approval prompt for a dapp's ERC20 permission request",
	Long: `Show what a site is asking for when it requests an ERC20 spending permission.

The token symbol comes from the bundled registry when the token is well known,
otherwise it is read from the token contract. Pass the raw approve calldata
with --data to also see the spender and the amount.

The command exits with status 2 when the token address is malformed.`,
	Example: `  allowance approve --origin https://app.uniswap.org --to 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseCalldata(config.Data)
		if err != nil {
			return err
		}
		n, err := currentNetwork()
		if err != nil {
			return err
		}
		resolver := symbolResolver(ethReader(n), n)

		req := approve.ApprovalRequest{
			Origin: config.Origin,
			To:     config.To,
			Data:   data,
		}
		screen := approve.NewScreen(req, resolver, approve.WithLogger(logger))
		defer screen.Unmount()

		// the lookup gets one node timeout plus some slack, past that the
		// reader is cancelled and the screen resolves to unknown
		mountCtx, cancel := context.WithTimeout(cmd.Context(), config.Timeout+time.Second)
		defer cancel()

		logger.Info("showing approval prompt",
			zap.String("screen", screen.ID()),
			zap.String("network", n.GetName()),
			zap.String("origin", req.Origin),
			zap.String("to", req.To),
		)

		stop := func() {}
		if !config.JSONOutput {
			stop = appUI.Spinner("Resolving token symbol...")
		}
		screen.Mount(mountCtx)
		st, err := screen.Wait(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		prompt := approve.Render(st, req)
		if config.JSONOutput {
			out := approveOutput{
				Screen: screen.ID(),
				Origin: req.Origin,
				Token:  req.To,
				Host:   st.Host,
				Symbol: st.TokenSymbol,
				Prompt: prompt,
			}
			if st.Err != nil {
				out.Error = st.Err.Error()
			}
			enc := json.NewEncoder(appUI.Writer())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
		} else {
			approve.Display(appUI, prompt)
		}

		switch {
		case errors.Is(st.Err, symbol.ErrInvalidAddress):
			return fmt.Errorf("%w: %w", errUnsafeRequest, st.Err)
		case st.Err != nil && !config.JSONOutput:
			appUI.Warn("Couldn't find the token symbol: %s", st.Err)
			if errors.Is(st.Err, reader.ErrNoNodes) {
				appUI.Warn("Set --node or %s to read the token contract.", n.GetNodeVariableName())
			}
		}
		return nil
	},
}

func init() {
	approveCmd.Flags().StringVarP(&config.Origin, "origin", "o", "", "URL of the page that requested the permission")
	approveCmd.Flags().StringVarP(&config.To, "to", "t", "", "ERC20 token contract address")
	approveCmd.Flags().StringVarP(&config.Data, "data", "d", "", "Raw approve(address,uint256) calldata in hex")
	addReaderFlags(approveCmd)
	approveCmd.Flags().BoolVarP(&config.JSONOutput, "json", "j", false, "Print the prompt as JSON")
	_ = approveCmd.MarkFlagRequired("origin")
	_ = approveCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(approveCmd)
}

func addReaderFlags(c *cobra.Command) {
	c.Flags().StringVar(&config.NodeURL, "node", "", "RPC node URL, overrides the network's default nodes")
	c.Flags().DurationVar(&config.Timeout, "timeout", reader.TIMEOUT, "Timeout of a single node call")
	c.Flags().BoolVar(&config.NoCache, "no-cache", false, "Don't read or write the symbol cache")
	c.Flags().StringVar(&config.CachePath, "cache", "", "Symbol cache file (default ~/.allowance/cache.json)")
}
