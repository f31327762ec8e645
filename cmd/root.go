// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/allowance/config"
	"github.com/tranvictor/allowance/logutils"
	"github.com/tranvictor/allowance/networks"
	"github.com/tranvictor/allowance/ui"
)

var (
	appUI  ui.UI = ui.NewTerminalUI(false)
	logger       = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Review ERC20 spending permissions requested by dapps",
	Long: fmt.Sprintf(`Allowance shows what a site is asking for when it requests permission to
spend one of your ERC20 tokens.

Token symbols are looked up in a bundled registry of well known tokens first.
Unknown tokens are asked for their symbol on chain, and the answer is cached
in ~/.allowance/cache.json.

Supported networks: %s.
Every network uses public nodes by default. You can use your own node by
setting the network's node env var (for example %s for mainnet) or by
passing --node.`,
		strings.Join(networks.GetSupportedNetworkNames(), ", "),
		networks.EthereumMainnet.GetNodeVariableName(),
	),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appUI = ui.NewTerminalUI(config.NoColor)
		l, err := logutils.NewWithFile(config.LogLevel, config.Debug, logutils.FileOptions{
			Filename:   config.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "mainnet", "EVM network the token lives on, by name or chain id. See the long help for valid names.")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error. Logs go to stderr.")
	rootCmd.PersistentFlags().StringVar(&config.LogFile, "log-file", "", "Also write JSON logs to this file, rotated at 10MB.")
	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false, "Human readable logs with caller information.")
	rootCmd.PersistentFlags().BoolVar(&config.NoColor, "no-color", false, "Disable coloured output.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		appUI.Error("%s", err)
		os.Exit(exitCode(err))
	}
}
