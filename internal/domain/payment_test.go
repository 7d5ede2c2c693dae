package domain_test

import (
	"errors"
	"testing"

	"github.com/kaskita/kasledger/internal/domain"
)

func int64p(v int64) *int64 { return &v }

func TestComputeBreakdown(t *testing.T) {
	tests := []struct {
		name        string
		principal   int64
		serviceFee  int64
		externalFee int64
		payment     domain.Payment
		want        domain.Breakdown
		wantErr     error
	}{
		{
			name:        "split transfer with bank admin fee",
			principal:   100_000,
			serviceFee:  10_000,
			externalFee: 2_500,
			payment: domain.Payment{
				Method:            domain.PaymentSplit,
				CashAmount:        int64p(50_000),
				TransferAccountID: "acc-bca",
			},
			want: domain.Breakdown{
				Total:       110_000,
				SourceDebit: 102_500,
				Profit:      7_500,
				CashLeg:     50_000,
				TransferLeg: 60_000,
			},
		},
		{
			name:       "full cash payment",
			principal:  50_000,
			serviceFee: 5_000,
			payment:    domain.Payment{Method: domain.PaymentCash},
			want: domain.Breakdown{
				Total:       55_000,
				SourceDebit: 50_000,
				Profit:      5_000,
				CashLeg:     55_000,
			},
		},
		{
			name:       "full transfer payment",
			principal:  200_000,
			serviceFee: 8_000,
			payment: domain.Payment{
				Method:            domain.PaymentTransfer,
				TransferAccountID: "acc-bca",
			},
			want: domain.Breakdown{
				Total:       208_000,
				SourceDebit: 200_000,
				Profit:      8_000,
				TransferLeg: 208_000,
			},
		},
		{
			name:       "split without cash amount is invalid",
			principal:  100_000,
			serviceFee: 10_000,
			payment: domain.Payment{
				Method:            domain.PaymentSplit,
				TransferAccountID: "acc-bca",
			},
			wantErr: domain.ErrInvalidSplit,
		},
		{
			name:       "split cash leg above total is invalid",
			principal:  100_000,
			serviceFee: 10_000,
			payment: domain.Payment{
				Method:            domain.PaymentSplit,
				CashAmount:        int64p(120_000),
				TransferAccountID: "acc-bca",
			},
			wantErr: domain.ErrInvalidSplit,
		},
		{
			name:      "transfer without receiving account is invalid",
			principal: 100_000,
			payment:   domain.Payment{Method: domain.PaymentTransfer},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:    "zero principal is invalid",
			payment: domain.Payment{Method: domain.PaymentCash},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:        "negative external fee is invalid",
			principal:   100_000,
			externalFee: -1,
			payment:     domain.Payment{Method: domain.PaymentCash},
			wantErr:     domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ComputeBreakdown(tt.principal, tt.serviceFee, tt.externalFee, tt.payment)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("breakdown mismatch:\n got  %+v\n want %+v", got, tt.want)
			}

			if got.CashLeg+got.TransferLeg != got.Total {
				t.Errorf("legs do not sum to total: %d + %d != %d", got.CashLeg, got.TransferLeg, got.Total)
			}
		})
	}
}

func TestComputeBreakdown_SplitFullCash(t *testing.T) {
	// A split where the cash leg covers the whole total needs no
	// receiving account.
	got, err := domain.ComputeBreakdown(100_000, 0, 0, domain.Payment{
		Method:     domain.PaymentSplit,
		CashAmount: int64p(100_000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TransferLeg != 0 || got.CashLeg != 100_000 {
		t.Errorf("unexpected legs: %+v", got)
	}
}
