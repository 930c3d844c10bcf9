package main

import (
	"bytes"
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
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookkeeper-cli",
		Short: "Bookkeeper CLI tool",
		Long:  `A command line interface for interacting with the Bookkeeper API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bookkeeper API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var accountType string

	createAccountCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createAccount(args[0], accountType)
		},
	}
	createAccountCmd.Flags().StringVar(&accountType, "type", "Assets", "Account type (Assets, Liabilities, Equity, Revenue, Expenses)")

	listAccountsCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	}

	deleteAccountCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its journal lines",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteAccount(args[0])
		},
	}

	accountCmd.AddCommand(createAccountCmd, listAccountsCmd, deleteAccountCmd)
	rootCmd.AddCommand(accountCmd)

	// Entry commands
	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Journal entry operations",
	}

	var (
		entryDate string
		entryMemo string
	)

	postEntryCmd := &cobra.Command{
		Use:   "post <account:debit:credit> ...",
		Short: "Post a journal entry",
		Long: `Post a balanced journal entry. Each argument is one line in the form
account_id:debit:credit, e.g. 01ABC:100:0 01DEF:0:100.`,
		Args: cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postEntry(entryDate, entryMemo, args)
		},
	}
	postEntryCmd.Flags().StringVar(&entryDate, "date", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	postEntryCmd.Flags().StringVar(&entryMemo, "memo", "", "Entry memo")

	listEntriesCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/journal-entries")
		},
	}

	entryCmd.AddCommand(postEntryCmd, listEntriesCmd)
	rootCmd.AddCommand(entryCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	trialBalanceCmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Show per-account debit and credit totals",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/ledger/trial-balance")
		},
	}

	ledgerCmd.AddCommand(consistencyCmd, trialBalanceCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createAccount(name, accountType string) {
	payload, _ := json.Marshal(map[string]string{
		"name": name,
		"type": accountType,
	})

	postJSON("/api/v1/accounts", payload, http.StatusCreated)
}

func deleteAccount(id string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodDelete, baseURL+"/api/v1/accounts/"+id, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Delete FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println("Account deleted")
}

func postEntry(date, memo string, lineArgs []string) {
	type line struct {
		AccountID string `json:"account_id"`
		Debit     string `json:"debit"`
		Credit    string `json:"credit"`
	}

	lines := make([]line, 0, len(lineArgs))

	for _, arg := range lineArgs {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 {
			fmt.Printf("Invalid line %q, expected account_id:debit:credit\n", arg)
			os.Exit(1)
		}

		lines = append(lines, line{AccountID: parts[0], Debit: parts[1], Credit: parts[2]})
	}

	payload, _ := json.Marshal(map[string]any{
		"date":  date,
		"memo":  memo,
		"lines": lines,
	})

	postJSON("/api/v1/journal-entries", payload, http.StatusCreated)
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
		return
	}

	fmt.Println("Consistency check FAILED: debits and credits do not balance")
	os.Exit(1)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printIndented(body)
}

func postJSON(path string, payload []byte, wantStatus int) {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != wantStatus {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printIndented(body)
}

func printIndented(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(buf.String())
}
