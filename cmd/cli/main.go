package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	tenant  string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "contaflux-cli",
		Short: "Contaflux CLI tool",
		Long:  `A command line interface for interacting with the Contaflux API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Contaflux API")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Tenant ID sent on every request")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Balance commands
	balanceCmd := &cobra.Command{
		Use:   "balances",
		Short: "Balance operations",
	}

	recalculateCmd := &cobra.Command{
		Use:   "recalculate [account-id]",
		Short: "Recalculate balances for one account or the whole tenant",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				recalculateAccount(args[0])
				return
			}
			recalculateTenant()
		},
	}

	balanceCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(balanceCmd)

	// Cash flow commands
	cashflowCmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Project cash flow for a period",
		Run: func(cmd *cobra.Command, args []string) {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			projectCashFlow(from, to)
		},
	}
	cashflowCmd.Flags().String("from", "", "Period start (YYYY-MM-DD)")
	cashflowCmd.Flags().String("to", "", "Period end (YYYY-MM-DD)")
	rootCmd.AddCommand(cashflowCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path string) []byte {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if method == http.MethodPost {
		reqBody = strings.NewReader("{}")
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenant)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func recalculateAccount(accountID string) {
	body := doRequest(http.MethodPost, "/api/v1/accounts/"+accountID+"/recalculate")

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account %s recalculated\n", accountID)
	fmt.Printf("Balance: %v (drift %v)\n", result["balance"], result["drift"])
}

func recalculateTenant() {
	body := doRequest(http.MethodPost, "/api/v1/balances/recalculate")

	var results []map[string]any
	if err := json.Unmarshal(body, &results); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recalculated %d accounts\n", len(results))
	for _, r := range results {
		fmt.Printf("  %v: balance %v (drift %v)\n", r["account_id"], r["balance"], r["drift"])
	}
}

func projectCashFlow(from, to string) {
	path := "/api/v1/cashflow"
	if from != "" || to != "" {
		path += "?from=" + from + "&to=" + to
	}

	body := doRequest(http.MethodGet, path)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Inflow:  %v\n", result["inflow"])
	fmt.Printf("Outflow: %v\n", result["outflow"])
	fmt.Printf("Net:     %v\n", result["net"])

	if entries, ok := result["entries"].([]any); ok {
		fmt.Printf("Entries: %d\n", len(entries))
	}
}
