package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// memStore keeps the last saved state in memory
type memStore struct {
	saved   *domain.AppState
	saves   int
	saveErr error
	loadErr error
}

func (m *memStore) Load(ctx context.Context) (*domain.AppState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, store.ErrNotFound
	}
	return m.saved.Clone(), nil
}

func (m *memStore) Save(ctx context.Context, state *domain.AppState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = state.Clone()
	return nil
}

func (m *memStore) Location() string { return "memory" }
func (m *memStore) Close() error     { return nil }

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func openTracker(t *testing.T, st store.Store) *Tracker {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return testNow }
	tr, err := Open(context.Background(), st, engine)
	require.NoError(t, err)
	return tr
}

func TestOpen_DefaultsWhenNothingSaved(t *testing.T) {
	st := &memStore{}
	tr := openTracker(t, st)

	require.NotNil(t, tr.Summary())
	assert.True(t, tr.Summary().NetWorth.IsZero())
	assert.Equal(t, 0, st.saves, "opening does not write")
	assert.Equal(t, "memory", tr.Location())
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), nil, nil)
	assert.Error(t, err)

	_, err = Open(context.Background(), &memStore{loadErr: errors.New("disk on fire")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestTracker_PersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	tr := openTracker(t, st)

	require.NoError(t, tr.SetAsset(ctx, domain.Equity, "index_funds", domain.MoneyRecord{Value: d(500000)}))
	assert.Equal(t, 1, st.saves)
	assert.True(t, tr.Summary().TotalAssets.Equal(d(500000)))

	require.NoError(t, tr.SetRegularIncome(ctx, d(90000)))
	require.NoError(t, tr.SetExpense(ctx, MonthlyExpenses, "rent", d(30000)))
	assert.Equal(t, 3, st.saves)

	assert.True(t, tr.Summary().MonthlySavings.Equal(d(60000)))
	assert.True(t, st.saved.Expenses.MonthlyRecurring.Named["rent"].Equal(d(30000)), "the saved copy matches the current state")
	assert.Equal(t, testNow, tr.State().UpdatedAt)
}

func TestTracker_FailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	tr := openTracker(t, st)
	require.NoError(t, tr.SetRegularIncome(ctx, d(50000)))

	st.saveErr = errors.New("read-only file system")
	err := tr.SetRegularIncome(ctx, d(999999))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save state")

	assert.True(t, tr.State().Income.Regular.Equal(d(50000)))
	assert.True(t, tr.Summary().MonthlyIncome.Equal(d(50000)))
}

func TestTracker_InvalidMutationIsNotSaved(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	tr := openTracker(t, st)

	_, err := tr.AddCustomAsset(ctx, domain.Cash, "  ", domain.MoneyRecord{Value: d(10)})
	assert.Error(t, err)
	_, err = tr.AddAdditionalIncome(ctx, "gig", d(100), "fortnightly")
	assert.Error(t, err)
	_, err = tr.AddGoal(ctx, domain.Goal{Name: "car", TimelineYears: 0})
	assert.Error(t, err)
	_, err = tr.AddPolicy(ctx, "pet", domain.InsurancePolicy{Name: "cat cover"})
	assert.Error(t, err)
	err = tr.SetExpense(ctx, "weekly", "coffee", d(10))
	assert.Error(t, err)

	assert.Equal(t, 0, st.saves)
}

func TestTracker_AssetsAndLiabilities(t *testing.T) {
	ctx := context.Background()
	tr := openTracker(t, &memStore{})

	id, err := tr.AddCustomAsset(ctx, domain.RealEstate, "plot", domain.MoneyRecord{Value: d(2000000), YieldPct: d(-4)})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	custom := tr.State().Assets.Category(domain.RealEstate).Custom
	require.Len(t, custom, 1)
	assert.True(t, custom[0].YieldPct.IsZero(), "negative yields are clamped")

	require.NoError(t, tr.SetLiability(ctx, domain.HomeLoan, domain.Liability{Amount: d(1500000), RemainingTenureMonths: 120}))
	loanID, err := tr.AddCustomLiability(ctx, "family loan", domain.Liability{Amount: d(100000)})
	require.NoError(t, err)
	assert.True(t, tr.Summary().NetWorth.Equal(d(400000)))

	require.NoError(t, tr.RemoveLiability(ctx, loanID))
	require.NoError(t, tr.RemoveLiability(ctx, domain.HomeLoan))
	assert.True(t, tr.Summary().NetWorth.Equal(d(2000000)))

	require.NoError(t, tr.RemoveAsset(ctx, domain.RealEstate, id))
	assert.True(t, tr.Summary().TotalAssets.IsZero())

	assert.ErrorIs(t, tr.RemoveAsset(ctx, domain.RealEstate, id), ErrRecordNotFound)
	assert.ErrorIs(t, tr.RemoveAsset(ctx, "crypto", "btc"), ErrRecordNotFound)
	assert.ErrorIs(t, tr.RemoveLiability(ctx, "nope"), ErrRecordNotFound)
}

func TestTracker_IncomeAndExpenses(t *testing.T) {
	ctx := context.Background()
	tr := openTracker(t, &memStore{})

	require.NoError(t, tr.SetRegularIncome(ctx, d(80000)))
	bonusID, err := tr.AddAdditionalIncome(ctx, "bonus", d(120000), "annually")
	require.NoError(t, err)
	rentID, err := tr.AddPassiveIncome(ctx, "sublet", d(5000))
	require.NoError(t, err)
	assert.True(t, tr.Summary().MonthlyIncome.Equal(d(95000)))

	require.NoError(t, tr.RemoveIncome(ctx, bonusID))
	require.NoError(t, tr.RemoveIncome(ctx, rentID))
	assert.True(t, tr.Summary().MonthlyIncome.Equal(d(80000)))
	assert.ErrorIs(t, tr.RemoveIncome(ctx, bonusID), ErrRecordNotFound)

	require.NoError(t, tr.SetExpense(ctx, MonthlyExpenses, "groceries", d(12000)))
	feesID, err := tr.AddCustomExpense(ctx, AnnualExpenses, "school fees", d(96000))
	require.NoError(t, err)
	assert.True(t, tr.Summary().MonthlyExpenses.Equal(d(20000)))

	require.NoError(t, tr.RemoveExpense(ctx, AnnualExpenses, feesID))
	require.NoError(t, tr.RemoveExpense(ctx, MonthlyExpenses, "groceries"))
	assert.True(t, tr.Summary().MonthlyExpenses.IsZero())
	assert.ErrorIs(t, tr.RemoveExpense(ctx, MonthlyExpenses, "groceries"), ErrRecordNotFound)

	bigID, err := tr.AddBigExpense(ctx, domain.BigExpense{Name: "flat", Amount: d(6000000), RentalYieldPct: d(3), Year: 2030})
	require.NoError(t, err)
	assert.True(t, tr.Summary().PlannedRentalIncome.Equal(d(15000)))
	require.NoError(t, tr.RemoveBigExpense(ctx, bigID))
	assert.ErrorIs(t, tr.RemoveBigExpense(ctx, bigID), ErrRecordNotFound)
}

func TestTracker_PlanOperations(t *testing.T) {
	ctx := context.Background()
	tr := openTracker(t, &memStore{})

	policyID, err := tr.AddPolicy(ctx, domain.LifePolicy, domain.InsurancePolicy{Name: "term", SumAssured: d(10000000), TermYears: 30})
	require.NoError(t, err)
	state := tr.State()
	require.Len(t, state.Insurance.Life, 1)
	assert.Equal(t, testNow, state.Insurance.Life[0].StartDate)
	require.NoError(t, tr.RemovePolicy(ctx, policyID))
	assert.ErrorIs(t, tr.RemovePolicy(ctx, policyID), ErrRecordNotFound)

	goalID, err := tr.AddGoal(ctx, domain.Goal{Name: "europe trip", TargetAmount: d(600000), TimelineYears: 2})
	require.NoError(t, err)
	require.Len(t, tr.Summary().Goals, 1)
	require.NoError(t, tr.RemoveGoal(ctx, goalID))
	assert.Empty(t, tr.Summary().Goals)
	assert.ErrorIs(t, tr.RemoveGoal(ctx, goalID), ErrRecordNotFound)

	require.NoError(t, tr.SetRiskAnswers(ctx, domain.RiskAnswers{Experience: 5, Knowledge: 5, VolatilityTolerance: 5, GoalOrientation: 5, Horizon: 5}))
	assert.Equal(t, 100, tr.Summary().Risk.Score)

	require.NoError(t, tr.UpdateAssumptions(ctx, func(a *domain.Assumptions) { a.InflationPct = d(8) }))
	assert.True(t, tr.State().Assumptions.InflationPct.Equal(d(8)))
	assert.True(t, tr.State().Assumptions.ExpectedReturnPct.Equal(d(12)))

	require.NoError(t, tr.SetAssumptions(ctx, domain.Assumptions{}))
	assert.True(t, tr.State().Assumptions.ExpectedReturnPct.IsZero(), "zero rates are stored as given")
	assert.Equal(t, 85, tr.State().Assumptions.LifeExpectancy)

	require.NoError(t, tr.SetPersonal(ctx, domain.PersonalInfo{Name: "Meera", BirthDate: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)}))
	assert.Equal(t, "Meera", tr.State().Personal.Name)
	assert.Error(t, tr.SetPersonal(ctx, domain.PersonalInfo{Dependents: -1}))
}

func TestTracker_ZeroRatesSurviveReload(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	tr := openTracker(t, st)

	require.NoError(t, tr.SetAssumptions(ctx, domain.Assumptions{LifeExpectancy: 80}))
	require.NoError(t, tr.SetRegularIncome(ctx, d(50000)))

	reopened := openTracker(t, st)
	a := reopened.State().Assumptions
	assert.True(t, a.ExpectedReturnPct.IsZero())
	assert.True(t, a.InflationPct.IsZero())
	assert.True(t, a.SavingsGrowthPct.IsZero())
	assert.Equal(t, 80, a.LifeExpectancy)
	assert.Equal(t, tr.Summary().FFDepletionYears, reopened.Summary().FFDepletionYears)
}

func TestTracker_Replace(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	tr := openTracker(t, st)

	imported := domain.NewAppState()
	imported.Income.Regular = d(70000)
	require.NoError(t, tr.Replace(ctx, imported))

	assert.True(t, tr.Summary().MonthlyIncome.Equal(d(70000)))
	imported.Income.Regular = d(1)
	assert.True(t, tr.State().Income.Regular.Equal(d(70000)), "the tracker keeps its own copy")

	assert.Error(t, tr.Replace(ctx, nil))
}

func TestTracker_StateIsACopy(t *testing.T) {
	ctx := context.Background()
	tr := openTracker(t, &memStore{})
	require.NoError(t, tr.SetExpense(ctx, MonthlyExpenses, "rent", d(25000)))

	s := tr.State()
	s.Expenses.MonthlyRecurring.Named["rent"] = d(1)

	assert.True(t, tr.State().Expenses.MonthlyRecurring.Named["rent"].Equal(d(25000)))
}

func TestTracker_WithFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "finfree.yaml")

	tr := openTracker(t, store.NewFileStore(path))
	require.NoError(t, tr.SetAsset(ctx, domain.Cash, "savings_account", domain.MoneyRecord{Value: d(300000)}))
	require.NoError(t, tr.SetExpense(ctx, MonthlyExpenses, "living", d(25000)))
	want := tr.Summary().FFDepletionYears

	reopened := openTracker(t, store.NewFileStore(path))
	assert.Equal(t, want, reopened.Summary().FFDepletionYears)
	assert.True(t, reopened.Summary().LiquidAssets.Equal(d(300000)))
}
