package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kasledger-cli",
		Short: "Kas ledger CLI tool",
		Long:  `A command line interface for the kiosk cash ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the kas ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}
	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List kas accounts with balances",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	})
	accountsCmd.AddCommand(&cobra.Command{
		Use:   "low-balance",
		Short: "List accounts under their advisory minimum",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/low-balance")
		},
	})
	rootCmd.AddCommand(accountsCmd)

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check every account's balance against its newest entry",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})
	rootCmd.AddCommand(ledgerCmd)

	shiftCmd := &cobra.Command{
		Use:   "shift",
		Short: "Operator shift operations",
	}
	shiftCmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the open shift",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/shifts/current")
		},
	})

	var operatorName string
	var initialCash int64
	var postCapital bool
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Open a shift",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/shifts", map[string]any{
				"operator_name": operatorName,
				"initial_cash":  initialCash,
				"post_capital":  postCapital,
			})
		},
	}
	startCmd.Flags().StringVar(&operatorName, "operator", "", "Operator name")
	startCmd.Flags().Int64Var(&initialCash, "initial-cash", 0, "Counted opening cash in rupiah")
	startCmd.Flags().BoolVar(&postCapital, "post-capital", false, "Post opening cash as initial capital")
	shiftCmd.AddCommand(startCmd)

	shiftCmd.AddCommand(&cobra.Command{
		Use:   "close",
		Short: "Close the open shift",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/shifts/close", nil)
		},
	})

	var voucherCashIn, actualCash int64
	var notes string
	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare expected against counted cash",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/shifts/reconcile", map[string]any{
				"voucher_cash_in": voucherCashIn,
				"actual_cash":     actualCash,
				"notes":           notes,
			})
		},
	}
	reconcileCmd.Flags().Int64Var(&voucherCashIn, "voucher-cash-in", 0, "Cash from voucher sales in rupiah")
	reconcileCmd.Flags().Int64Var(&actualCash, "actual-cash", 0, "Physically counted cash in rupiah")
	reconcileCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	shiftCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(shiftCmd)

	var merchantID, rate string
	settleCmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle a merchant account into its destination",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{"merchant_account_id": merchantID}
			if rate != "" {
				body["rate"] = rate
			}
			postJSON("/api/v1/events/settlement", body)
		},
	}
	settleCmd.Flags().StringVar(&merchantID, "merchant", "", "Merchant account ID")
	settleCmd.Flags().StringVar(&rate, "rate", "", "MDR rate override, e.g. 0.0015")
	rootCmd.AddCommand(settleCmd)

	pricingCmd := &cobra.Command{
		Use:   "pricing",
		Short: "Pricing catalog operations",
	}
	pricingCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/pricing")
		},
	})
	rootCmd.AddCommand(pricingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, body map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			os.Exit(1)
		}
		reader = bytes.NewReader(raw)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", reader)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(pretty.String())
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var reports []struct {
		AccountID    string `json:"account_id"`
		AccountLabel string `json:"account_label"`
		Balance      int64  `json:"balance"`
		Consistent   bool   `json:"consistent"`
		Drift        int64  `json:"drift"`
	}
	if err := json.Unmarshal(raw, &reports); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range reports {
		status := "OK"
		if !r.Consistent {
			status = fmt.Sprintf("DRIFT %d", r.Drift)
			failed++
		}
		fmt.Printf("%-20s balance=%-12d %s\n", r.AccountLabel, r.Balance, status)
	}

	if failed > 0 {
		fmt.Printf("Consistency check FAILED: %d account(s) inconsistent\n", failed)
		os.Exit(1)
	}
	fmt.Println("Consistency check PASSED")
}
