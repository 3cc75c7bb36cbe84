package lead

import (
	"errors"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/traumschule/joyutils/arrays"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/indexer"
	"github.com/traumschule/joyutils/units"
)

var ErrInvalidSalary = errors.New("invalid salary")

// Terms are what salaries are quoted against: a JOY price in USD and a term length in blocks.
type Terms struct {
	JoyUsdRate math.LegacyDec
	TermLength uint64
}

func (t Terms) validate() error {
	if !t.JoyUsdRate.IsPositive() {
		return fmt.Errorf("%w: JOY/USD rate must be positive", ErrInvalidSalary)
	}
	if t.TermLength == 0 {
		return fmt.Errorf("%w: term length must be positive", ErrInvalidSalary)
	}
	return nil
}

// WorkerRow is one line of the workers table.
type WorkerRow struct {
	ID         uint64
	Handle     string
	IsLead     bool
	JoyPerTerm math.LegacyDec
	UsdPerTerm math.LegacyDec
}

// JoyPerTerm is what a reward per block earns over a term.
func JoyPerTerm(rewardPerBlock math.Int, termLength uint64) math.LegacyDec {
	return units.HapiToJoy(rewardPerBlock).MulInt(math.NewIntFromUint64(termLength))
}

func WorkerRows(workers []indexer.Worker, terms Terms) []WorkerRow {
	return arrays.Map(workers, func(w indexer.Worker) WorkerRow {
		joyPerTerm := JoyPerTerm(w.RewardPerBlock, terms.TermLength)
		return WorkerRow{
			ID:         w.RuntimeID,
			Handle:     w.Handle,
			IsLead:     w.IsLead,
			JoyPerTerm: joyPerTerm,
			UsdPerTerm: joyPerTerm.Mul(terms.JoyUsdRate),
		}
	})
}

// SuggestedUsdSalary is the worker's current salary in USD per term, rounded to cents.
func SuggestedUsdSalary(worker indexer.Worker, terms Terms) math.LegacyDec {
	usd := JoyPerTerm(worker.RewardPerBlock, terms.TermLength).Mul(terms.JoyUsdRate)
	cents := usd.MulInt64(100).RoundInt()
	return math.LegacyNewDecFromInt(cents).QuoInt64(100)
}

// HapiPerBlock converts a USD salary per term into a reward per block. Both conversions truncate.
func HapiPerBlock(usdPerTerm math.LegacyDec, terms Terms) (math.Int, error) {
	if err := terms.validate(); err != nil {
		return math.Int{}, err
	}
	if usdPerTerm.IsNegative() {
		return math.Int{}, fmt.Errorf("%w: salary must not be negative", ErrInvalidSalary)
	}

	hapiPerTerm := units.JoyDecToHapi(usdPerTerm.Quo(terms.JoyUsdRate))
	return hapiPerTerm.Quo(math.NewIntFromUint64(terms.TermLength)), nil
}

// AccountChecker reports whether a wallet controls an address.
type AccountChecker interface {
	HasAccount(address string) bool
}

// SalaryRequest is a lead's intent to change a worker's salary. Nil fields have not been chosen yet.
type SalaryRequest struct {
	Group      WorkingGroup
	WorkerID   *uint64
	UsdPerTerm *math.LegacyDec
}

// SalaryPlan is a validated salary change, ready to be confirmed and signed by the lead.
type SalaryPlan struct {
	Group        WorkingGroup
	Worker       indexer.Worker
	UsdPerTerm   math.LegacyDec
	JoyPerTerm   math.LegacyDec
	JoyPerBlock  math.LegacyDec
	HapiPerBlock math.Int

	// LeadRoleKey signs the transaction.
	LeadRoleKey string
	Transaction *extrinsic.UnsignedTransaction
}

// BuildSetSalary validates request against the group's workers and the connected wallet and builds the
// updateRewardAmount call. Anything missing fails with extrinsic.ErrMissingPrerequisite.
func BuildSetSalary(request SalaryRequest, workers []indexer.Worker, terms Terms, wallet AccountChecker) (*SalaryPlan, error) {
	if request.WorkerID == nil || request.UsdPerTerm == nil {
		return nil, fmt.Errorf("%w: missing worker or salary", extrinsic.ErrMissingPrerequisite)
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: missing wallet", extrinsic.ErrMissingPrerequisite)
	}

	worker, ok := arrays.Find(workers, func(w indexer.Worker) bool { return w.RuntimeID == *request.WorkerID && !w.IsLead })
	if !ok {
		return nil, fmt.Errorf("%w: no active worker %d in %s", extrinsic.ErrMissingPrerequisite, *request.WorkerID, request.Group.Title())
	}

	hapiPerBlock, err := HapiPerBlock(*request.UsdPerTerm, terms)
	if err != nil {
		return nil, err
	}

	groupLead, ok := indexer.Lead(workers)
	if !ok || groupLead.RoleAccount == "" || !wallet.HasAccount(groupLead.RoleAccount) {
		return nil, fmt.Errorf("%w: missing lead role key", extrinsic.ErrMissingPrerequisite)
	}

	joyPerTerm := request.UsdPerTerm.Quo(terms.JoyUsdRate)
	return &SalaryPlan{
		Group:        request.Group,
		Worker:       worker,
		UsdPerTerm:   *request.UsdPerTerm,
		JoyPerTerm:   joyPerTerm,
		JoyPerBlock:  joyPerTerm.QuoInt(math.NewIntFromUint64(terms.TermLength)),
		HapiPerBlock: hapiPerBlock,
		LeadRoleKey:  groupLead.RoleAccount,
		Transaction:  UpdateRewardAmount(request.Group, worker.RuntimeID, hapiPerBlock),
	}, nil
}

// UpdateRewardAmount builds the call setting a worker's reward per block.
func UpdateRewardAmount(group WorkingGroup, workerID uint64, hapiPerBlock math.Int) *extrinsic.UnsignedTransaction {
	return &extrinsic.UnsignedTransaction{
		Module: string(group),
		Method: "updateRewardAmount",
		Args: []extrinsic.Arg{
			{
				Name:    "workerId",
				Value:   types.NewU64(workerID),
				Display: strconv.FormatUint(workerID, 10),
			},
			{
				Name:    "rewardPerBlock",
				Value:   types.NewOption[types.U128](types.NewU128(*hapiPerBlock.BigInt())),
				Display: units.FormatHapi(hapiPerBlock) + " JOY",
			},
		},
	}
}
