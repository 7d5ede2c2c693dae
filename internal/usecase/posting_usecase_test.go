package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/usecase"
	"github.com/kaskita/kasledger/internal/usecase/mocks"
)

type postingFixture struct {
	accRepo   *mocks.MockAccountRepository
	entryRepo *mocks.MockEntryRepository
	auditRepo *mocks.MockAuditRepository
	txMgr     *mocks.MockTransactionManager
	retrier   *mocks.MockRetrier
	uc        *usecase.PostingUseCase
}

func newPostingFixture(catalog usecase.PricingCatalog) *postingFixture {
	f := &postingFixture{
		accRepo:   mocks.NewMockAccountRepository(),
		entryRepo: mocks.NewMockEntryRepository(),
		auditRepo: mocks.NewMockAuditRepository(),
		txMgr:     mocks.NewMockTransactionManager(),
		retrier:   mocks.NewMockRetrier(),
	}
	f.uc = usecase.NewPostingUseCase(
		f.txMgr,
		f.accRepo,
		f.entryRepo,
		f.auditRepo,
		catalog,
		usecase.NewDuplicateGuard(f.auditRepo),
		f.retrier,
		mocks.NewMockIDGenerator(),
		"kiosk-1",
		zerolog.Nop(),
	)
	return f
}

func seedAccount(f *postingFixture, id, label string, t domain.AccountType, balance int64) *domain.KasAccount {
	acc := &domain.KasAccount{ID: id, Label: label, Type: t, Balance: balance}
	f.accRepo.Seed(acc)
	return acc
}

func TestPostingUseCase_TransferOutSplitPayment(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-bca", "BCA", domain.AccountTypeBank, 500_000)
	seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 100_000)

	cash := int64(50_000)
	result, err := f.uc.Post(context.Background(), &domain.TransferOutEvent{
		CustomerName:    "Budi Santoso",
		SourceAccountID: "acc-bca",
		Principal:       100_000,
		ServiceFee:      10_000,
		ExternalFee:     2_500,
		Payment: domain.Payment{
			Method:            domain.PaymentSplit,
			CashAmount:        &cash,
			TransferAccountID: "acc-bca",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(result.Entries))
	}
	for i, e := range result.Entries {
		if e.CorrelationID != result.CorrelationID {
			t.Errorf("entry %d has correlation %q, want %q", i, e.CorrelationID, result.CorrelationID)
		}
		if !e.Consistent() {
			t.Errorf("entry %d balance chain broken: before=%d after=%d signed=%d",
				i, e.BalanceBefore, e.BalanceAfter, e.Signed())
		}
	}

	// Debit principal, debit external fee, credit cash leg, credit transfer leg.
	amounts := []int64{100_000, 2_500, 50_000, 60_000}
	types := []domain.EntryType{domain.EntryDebit, domain.EntryDebit, domain.EntryCredit, domain.EntryCredit}
	for i, e := range result.Entries {
		if e.Amount != amounts[i] || e.Type != types[i] {
			t.Errorf("entry %d = %s %d, want %s %d", i, e.Type, e.Amount, types[i], amounts[i])
		}
	}

	src, _ := f.accRepo.GetByID(context.Background(), "acc-bca")
	// 500k - 100k - 2.5k + 60k: the source is also the receiving account here.
	if src.Balance != 457_500 {
		t.Errorf("source balance = %d, want 457500", src.Balance)
	}
	drawer, _ := f.accRepo.GetByLabel(context.Background(), domain.CashDrawerLabel)
	if drawer.Balance != 150_000 {
		t.Errorf("drawer balance = %d, want 150000", drawer.Balance)
	}

	records := f.auditRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	if records[0].Profit != 7_500 {
		t.Errorf("audit profit = %d, want 7500", records[0].Profit)
	}
}

func TestPostingUseCase_WithdrawalTieredFee(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-bri", "BRI", domain.AccountTypeBank, 0)
	seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 200_000)

	result, err := f.uc.Post(context.Background(), &domain.WithdrawalEvent{
		CustomerName:         "Siti",
		DestinationAccountID: "acc-bri",
		Principal:            100_000,
		FeeMode:              domain.FeeDeducted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}

	// 100k falls in the lowest tier: 3,000 fee, 97,000 cash handed out.
	if result.Entries[0].Type != domain.EntryCredit || result.Entries[0].Amount != 100_000 {
		t.Errorf("destination leg = %s %d, want credit 100000", result.Entries[0].Type, result.Entries[0].Amount)
	}
	if result.Entries[1].Type != domain.EntryDebit || result.Entries[1].Amount != 97_000 {
		t.Errorf("drawer leg = %s %d, want debit 97000", result.Entries[1].Type, result.Entries[1].Amount)
	}

	drawer, _ := f.accRepo.GetByLabel(context.Background(), domain.CashDrawerLabel)
	if drawer.Balance != 103_000 {
		t.Errorf("drawer balance = %d, want 103000", drawer.Balance)
	}
}

func TestPostingUseCase_KJPWithdrawalFeeModes(t *testing.T) {
	tests := []struct {
		name        string
		mode        domain.FeeMode
		wantEntries int
		wantDrawer  int64
	}{
		{"deducted collapses to one leg", domain.FeeDeducted, 1, 202_000},
		{"separate keeps fee as income", domain.FeeSeparate, 2, 202_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostingFixture(nil)
			seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 300_000)

			result, err := f.uc.Post(context.Background(), &domain.KJPWithdrawalEvent{
				CustomerName: "Ani",
				Principal:    100_000,
				Fee:          2_000,
				FeeMode:      tt.mode,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Entries) != tt.wantEntries {
				t.Fatalf("expected %d entries, got %d", tt.wantEntries, len(result.Entries))
			}

			// Either way the drawer ends up down by principal minus fee.
			drawer, _ := f.accRepo.GetByLabel(context.Background(), domain.CashDrawerLabel)
			if drawer.Balance != tt.wantDrawer {
				t.Errorf("drawer balance = %d, want %d", drawer.Balance, tt.wantDrawer)
			}
		})
	}
}

func TestPostingUseCase_EDCDuplicateGuard(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-merchant", "EDC BRI", domain.AccountTypeMerchant, 0)
	seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 1_000_000)

	ev := &domain.EDCServiceEvent{
		CustomerName:      "Budi Santoso",
		MachineName:       "EDC BRI",
		MerchantAccountID: "acc-merchant",
		Principal:         500_000,
		Fee:               10_000,
	}

	if _, err := f.uc.Post(context.Background(), ev); err != nil {
		t.Fatalf("first post failed: %v", err)
	}

	// Same name with different casing and punctuation still matches.
	second := &domain.EDCServiceEvent{
		CustomerName:      "budi santoso.",
		MachineName:       "EDC BRI",
		MerchantAccountID: "acc-merchant",
		Principal:         300_000,
		Fee:               10_000,
	}
	_, err := f.uc.Post(context.Background(), second)
	if !errors.Is(err, domain.ErrPossibleDuplicate) {
		t.Fatalf("expected possible duplicate, got %v", err)
	}
	var dup *domain.PossibleDuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *PossibleDuplicateError, got %T", err)
	}
	if dup.Counterparty != "EDC BRI" {
		t.Errorf("duplicate counterparty = %q, want EDC BRI", dup.Counterparty)
	}

	second.Force = true
	if _, err := f.uc.Post(context.Background(), second); err != nil {
		t.Fatalf("forced post failed: %v", err)
	}
}

func TestPostingUseCase_SettlementDeductsMDR(t *testing.T) {
	f := newPostingFixture(nil)
	merchant := seedAccount(f, "acc-merchant", "EDC BRI", domain.AccountTypeMerchant, 2_000_000)
	merchant.SettlementAccountID = "acc-bri"
	seedAccount(f, "acc-bri", "BRI", domain.AccountTypeBank, 0)

	result, err := f.uc.Post(context.Background(), &domain.SettlementEvent{
		MerchantAccountID: "acc-merchant",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}

	// 2,000,000 at the default 0.15% rate: 3,000 fee, 1,997,000 lands.
	if result.Entries[0].Amount != 2_000_000 {
		t.Errorf("debit = %d, want 2000000", result.Entries[0].Amount)
	}
	if result.Entries[1].Amount != 1_997_000 {
		t.Errorf("credit = %d, want 1997000", result.Entries[1].Amount)
	}

	m, _ := f.accRepo.GetByID(context.Background(), "acc-merchant")
	if m.Balance != 0 {
		t.Errorf("merchant balance = %d, want 0", m.Balance)
	}

	records := f.auditRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	if records[0].FeeAmount != 3_000 {
		t.Errorf("audit fee = %d, want 3000", records[0].FeeAmount)
	}
}

func TestPostingUseCase_SettlementPrechecks(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-nodest", "EDC Mandiri", domain.AccountTypeMerchant, 100_000)

	_, err := f.uc.Post(context.Background(), &domain.SettlementEvent{MerchantAccountID: "acc-nodest"})
	if !errors.Is(err, domain.ErrNoSettlementDestination) {
		t.Errorf("expected ErrNoSettlementDestination, got %v", err)
	}

	empty := seedAccount(f, "acc-empty", "EDC BNI", domain.AccountTypeMerchant, 0)
	empty.SettlementAccountID = "acc-bri"
	seedAccount(f, "acc-bri", "BRI", domain.AccountTypeBank, 0)

	_, err = f.uc.Post(context.Background(), &domain.SettlementEvent{MerchantAccountID: "acc-empty"})
	if !errors.Is(err, domain.ErrEmptyMerchantBalance) {
		t.Errorf("expected ErrEmptyMerchantBalance, got %v", err)
	}
	if len(f.entryRepo.Entries()) != 0 {
		t.Errorf("precheck failure must not write entries, got %d", len(f.entryRepo.Entries()))
	}
}

func TestPostingUseCase_InsufficientBalance(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-bca", "BCA", domain.AccountTypeBank, 50_000)
	seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 0)

	_, err := f.uc.Post(context.Background(), &domain.TransferOutEvent{
		CustomerName:    "Budi",
		SourceAccountID: "acc-bca",
		Principal:       100_000,
		ServiceFee:      5_000,
		Payment:         domain.Payment{Method: domain.PaymentCash},
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var ib *domain.InsufficientBalanceError
	if !errors.As(err, &ib) {
		t.Fatalf("expected *InsufficientBalanceError, got %T", err)
	}
	if ib.AccountLabel != "BCA" || ib.Shortfall != 50_000 {
		t.Errorf("got label %q shortfall %d, want BCA 50000", ib.AccountLabel, ib.Shortfall)
	}
	if len(f.entryRepo.Entries()) != 0 {
		t.Errorf("failed post must not write entries, got %d", len(f.entryRepo.Entries()))
	}
	if len(f.auditRepo.Records()) != 0 {
		t.Errorf("failed post must not write audit records, got %d", len(f.auditRepo.Records()))
	}
}

func TestPostingUseCase_CashDrawerAutoCreated(t *testing.T) {
	f := newPostingFixture(nil)

	result, err := f.uc.Post(context.Background(), &domain.CapitalInjectionEvent{
		Amount:  500_000,
		Note:    "modal pagi",
		Initial: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if result.Entries[0].Category != domain.CategoryInitialCapital {
		t.Errorf("category = %s, want initial capital", result.Entries[0].Category)
	}

	drawer, err := f.accRepo.GetByLabel(context.Background(), domain.CashDrawerLabel)
	if err != nil {
		t.Fatalf("drawer was not created: %v", err)
	}
	if drawer.Type != domain.AccountTypeCash || drawer.Balance != 500_000 {
		t.Errorf("drawer = %s/%d, want cash/500000", drawer.Type, drawer.Balance)
	}
}

func TestPostingUseCase_BalanceAdjustment(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-ovo", "OVO", domain.AccountTypeEWallet, 150_000)

	// Matching balance: nothing to correct, nothing committed.
	result, err := f.uc.Post(context.Background(), &domain.BalanceAdjustmentEvent{
		AccountID:     "acc-ovo",
		ActualBalance: 150_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NoOp || len(result.Entries) != 0 {
		t.Fatalf("expected no-op, got NoOp=%v entries=%d", result.NoOp, len(result.Entries))
	}
	if len(f.auditRepo.Records()) != 0 {
		t.Errorf("no-op must not write an audit record")
	}

	// Downward correction becomes a debit for the difference.
	result, err = f.uc.Post(context.Background(), &domain.BalanceAdjustmentEvent{
		AccountID:     "acc-ovo",
		ActualBalance: 140_000,
		Note:          "selisih aplikasi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if result.Entries[0].Type != domain.EntryDebit || result.Entries[0].Amount != 10_000 {
		t.Errorf("entry = %s %d, want debit 10000", result.Entries[0].Type, result.Entries[0].Amount)
	}
}

func TestPostingUseCase_RetryKeepsSingleLegSet(t *testing.T) {
	f := newPostingFixture(nil)
	seedAccount(f, "acc-bca", "BCA", domain.AccountTypeBank, 500_000)
	seedAccount(f, "acc-dana", "DANA", domain.AccountTypeEWallet, 0)

	// First Begin fails with a transient error, the retrier runs the
	// whole attempt again.
	transient := errors.New("deadlock detected")
	failures := 1
	f.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		if failures > 0 {
			failures--
			return nil, transient
		}
		return &mocks.MockTransaction{}, nil
	}
	f.retrier.RetryFunc = func(ctx context.Context, op func() error) error {
		if err := op(); errors.Is(err, transient) {
			return op()
		} else if err != nil {
			return err
		}
		return nil
	}

	result, err := f.uc.Post(context.Background(), &domain.InternalTransferEvent{
		SourceAccountID:      "acc-bca",
		DestinationAccountID: "acc-dana",
		Amount:               200_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := f.entryRepo.Entries()
	if len(entries) != 2 {
		t.Fatalf("retry must produce exactly one leg set, got %d entries", len(entries))
	}
	for _, e := range entries {
		if e.CorrelationID != result.CorrelationID {
			t.Errorf("entry correlation %q, want %q", e.CorrelationID, result.CorrelationID)
		}
	}
	if len(f.auditRepo.Records()) != 1 {
		t.Errorf("retry must produce exactly one audit record, got %d", len(f.auditRepo.Records()))
	}
}

func TestPostingUseCase_LowBalanceAdvisory(t *testing.T) {
	f := newPostingFixture(nil)
	ppob := seedAccount(f, "acc-ppob", "Saldo PPOB", domain.AccountTypePPOB, 120_000)
	ppob.MinimumBalance = 100_000
	seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 0)

	result, err := f.uc.Post(context.Background(), &domain.TopUpEvent{
		CustomerName:    "Rina",
		SourceAccountID: "acc-ppob",
		CostPrice:       95_000,
		SellingPrice:    100_000,
		Payment:         domain.Payment{Method: domain.PaymentCash},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.LowBalance) != 1 || result.LowBalance[0] != "Saldo PPOB" {
		t.Errorf("low balance = %v, want [Saldo PPOB]", result.LowBalance)
	}
}

func TestPostingUseCase_TopUpFromCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockPricingCatalog(ctrl)
	catalog.EXPECT().Get(gomock.Any(), "PLN20").Return(&domain.PricingItem{
		Code:         "PLN20",
		Label:        "Token PLN 20rb",
		CostPrice:    19_500,
		SellingPrice: 22_000,
	}, nil)

	f := newPostingFixture(catalog)
	seedAccount(f, "acc-ppob", "Saldo PPOB", domain.AccountTypePPOB, 100_000)
	seedAccount(f, "acc-laci", domain.CashDrawerLabel, domain.AccountTypeCash, 0)

	result, err := f.uc.Post(context.Background(), &domain.TopUpEvent{
		CustomerName:    "Rina",
		SourceAccountID: "acc-ppob",
		ProductCode:     "PLN20",
		Payment:         domain.Payment{Method: domain.PaymentCash},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Amount != 19_500 {
		t.Errorf("cost leg = %d, want 19500", result.Entries[0].Amount)
	}
	if result.Entries[1].Amount != 22_000 {
		t.Errorf("cash leg = %d, want 22000", result.Entries[1].Amount)
	}

	records := f.auditRepo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	if records[0].Profit != 2_500 {
		t.Errorf("audit profit = %d, want 2500", records[0].Profit)
	}
}
