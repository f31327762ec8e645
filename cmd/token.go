package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/allowance/approve"
	"github.com/tranvictor/allowance/bleve"
	"github.com/tranvictor/allowance/db"
	"github.com/tranvictor/allowance/ui"
	"github.com/tranvictor/allowance/util"
)

var tokenCmd = &cobra.Command{
	Use:   "token <address>",
	Short: "Show what allowance knows about a token",
	Long: `Show the symbol, name and decimals of a token.

Well known tokens are answered from the bundled registry. Other tokens are
read from the contract on the selected network.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := util.ToChecksumAddress(args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", errUnsafeRequest, err)
		}

		if token, found := knownToken(db.Default(), address); found {
			appUI.KeyValue([][2]string{
				{"Address", token.Address},
				{"Symbol", token.Symbol},
				{"Name", token.Name},
				{"Decimals", fmt.Sprintf("%d", token.Decimals)},
				{"Source", appUI.Style(ui.StyledText{Text: "registry", Severity: ui.SeveritySuccess})},
			})
			return nil
		}

		n, err := currentNetwork()
		if err != nil {
			return err
		}
		r := ethReader(n)
		stop := appUI.Spinner(fmt.Sprintf("Reading %s on %s...", address, n.GetName()))
		sym, err := symbolResolver(r, n).ResolveSymbol(cmd.Context(), address)
		name, nameErr := r.ERC20Name(cmd.Context(), address)
		decimals, decimalsErr := r.ERC20Decimal(cmd.Context(), address)
		stop()
		if err != nil {
			return err
		}
		if nameErr != nil {
			logger.Debug("couldn't read token name", zap.String("address", address), zap.Error(nameErr))
			name = approve.UnknownSymbol
		}
		decimalsText := fmt.Sprintf("%d", decimals)
		if decimalsErr != nil {
			logger.Debug("couldn't read token decimals", zap.String("address", address), zap.Error(decimalsErr))
			decimalsText = approve.UnknownSymbol
		}
		appUI.KeyValue([][2]string{
			{"Address", address},
			{"Symbol", sym},
			{"Name", name},
			{"Decimals", decimalsText},
			{"Source", appUI.Style(ui.StyledText{Text: n.GetName(), Severity: ui.SeverityWarn})},
		})
		return nil
	},
}

type tokenMatch struct {
	token  db.TokenMetadata
	source string
}

// mergeMatches lists fuzzy matches first, then full text matches that the
// fuzzy search missed. A token found by both is reported once.
func mergeMatches(fuzzyHits, textHits []db.TokenMetadata) []tokenMatch {
	result := []tokenMatch{}
	seen := map[string]int{}
	for _, t := range fuzzyHits {
		if _, ok := seen[t.Address]; ok {
			continue
		}
		seen[t.Address] = len(result)
		result = append(result, tokenMatch{token: t, source: "fuzzy"})
	}
	for _, t := range textHits {
		if i, ok := seen[t.Address]; ok {
			result[i].source = "both"
			continue
		}
		seen[t.Address] = len(result)
		result = append(result, tokenMatch{token: t, source: "text"})
	}
	return result
}

var tokenSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find at max 10 matching tokens in the registry by symbol or name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		fuzzyHits, _ := db.SearchTokens(query)

		var textHits []db.TokenMetadata
		index, err := bleve.Default()
		if err != nil {
			logger.Warn("full text index unavailable", zap.Error(err))
		} else {
			textHits, _ = index.Search(query)
		}

		matches := mergeMatches(fuzzyHits, textHits)
		if len(matches) == 0 {
			appUI.Warn("No token matches %q", query)
			return nil
		}
		rows := make([][]string, len(matches))
		for i, m := range matches {
			rows[i] = []string{m.token.Symbol, m.token.Name, m.token.Address, m.source}
		}
		appUI.Table([]string{"Symbol", "Name", "Address", "Match"}, rows)
		return nil
	},
}

func init() {
	addReaderFlags(tokenCmd)
	tokenCmd.AddCommand(tokenSearchCmd)
	rootCmd.AddCommand(tokenCmd)
}
