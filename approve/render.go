package approve

import (
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tranvictor/allowance/symbol"
	"github.com/tranvictor/allowance/ui"
	"github.com/tranvictor/allowance/util"
)

const (
	ActionEditPermission = "Edit permission"
	ActionViewDetails    = "View details"

	feeTitle  = "Transaction fee"
	feeText   = "A transaction fee is associated with this permission."
	feeAction = "Edit"

	StatusLoading     = "loading"
	StatusResolved    = "resolved"
	StatusUnavailable = "unavailable"
	StatusInvalid     = "invalid"
)

type FeeSection struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Action string `json:"action"`
}

// Prompt is the rendered approval screen. Actions are labels only.
type Prompt struct {
	Title       string        `json:"title"`
	Explanation string        `json:"explanation"`
	Actions     []string      `json:"actions"`
	Fee         FeeSection    `json:"fee"`
	Details     [][2]string   `json:"details"`
	Status      ui.StyledText `json:"status"`
}

var (
	printer    = message.NewPrinter(language.English)
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// Render builds the prompt for st. It has no side effects and accepts the
// zero State.
func Render(st State, req ApprovalRequest) Prompt {
	p := Prompt{
		Title: fmt.Sprintf("Allow %s to access your %s?", st.Host, st.TokenSymbol),
		Explanation: fmt.Sprintf(
			"Do you trust this site? By granting this permission, you're allowing %s to withdraw your %s and automate transactions for you.",
			st.Host, st.TokenSymbol,
		),
		Actions: []string{ActionEditPermission, ActionViewDetails},
		Fee: FeeSection{
			Title:  feeTitle,
			Text:   feeText,
			Action: feeAction,
		},
		Status: status(st),
	}

	token := req.To
	if checksummed, err := util.ToChecksumAddress(req.To); err == nil {
		token = checksummed
	}
	p.Details = append(p.Details, [2]string{"Token", token})

	if len(req.Data) > 0 {
		call, err := DecodeApproveData(req.Data)
		if err != nil {
			p.Details = append(p.Details, [2]string{"Calldata", "not an approve call"})
		} else {
			p.Details = append(p.Details,
				[2]string{"Spender", call.Spender.Hex()},
				[2]string{"Amount", FormatAmount(call.Amount)},
			)
		}
	}
	return p
}

func status(st State) ui.StyledText {
	switch {
	case st.Phase == Loading:
		return ui.StyledText{Text: StatusLoading, Severity: ui.SeverityWarn}
	case errors.Is(st.Err, symbol.ErrInvalidAddress):
		return ui.StyledText{Text: StatusInvalid, Severity: ui.SeverityCritical}
	case st.Err != nil:
		return ui.StyledText{Text: StatusUnavailable, Severity: ui.SeverityError}
	default:
		return ui.StyledText{Text: StatusResolved, Severity: ui.SeveritySuccess}
	}
}

// FormatAmount writes raw token units with thousands separators. The
// maximum uint256 reads "unlimited".
func FormatAmount(amount *big.Int) string {
	switch {
	case amount == nil:
		return ""
	case amount.Cmp(maxUint256) == 0:
		return "unlimited"
	case amount.IsUint64():
		return printer.Sprintf("%d", amount.Uint64())
	default:
		return amount.String()
	}
}
