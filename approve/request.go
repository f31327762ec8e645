package approve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	ecommon "github.com/tranvictor/allowance/common"
)

var ErrNotApproveCall = errors.New("calldata is not an ERC20 approve call")

// ApprovalRequest is what a dapp asked the wallet to sign. Origin is the
// page that issued the request and To the token contract. Data is the raw
// approve(address,uint256) calldata and may be empty.
type ApprovalRequest struct {
	Origin string `json:"origin"`
	To     string `json:"to"`
	Data   []byte `json:"-"`
}

// ApproveCall is the decoded argument list of approve(address,uint256).
type ApproveCall struct {
	Spender common.Address
	Amount  *big.Int
}

// DecodeApproveData decodes approve calldata against the ERC20 ABI.
func DecodeApproveData(data []byte) (ApproveCall, error) {
	method, err := ecommon.GetERC20ABI().MethodById(data)
	if err != nil || method.Name != "approve" {
		return ApproveCall{}, ErrNotApproveCall
	}
	values, err := method.Inputs.UnpackValues(data[4:])
	if err != nil {
		return ApproveCall{}, fmt.Errorf("%w: %w", ErrNotApproveCall, err)
	}
	if len(values) != 2 {
		return ApproveCall{}, ErrNotApproveCall
	}
	spender, ok := values[0].(common.Address)
	if !ok {
		return ApproveCall{}, ErrNotApproveCall
	}
	amount, ok := values[1].(*big.Int)
	if !ok {
		return ApproveCall{}, ErrNotApproveCall
	}
	return ApproveCall{Spender: spender, Amount: amount}, nil
}
