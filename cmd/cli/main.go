package main

import (
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
		Use:   "cashwell-cli",
		Short: "Cashwell CLI tool",
		Long:  `A command line interface for interacting with the Cashwell API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Cashwell API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		statsCmd(),
		recordsCmd(),
		rankingsCmd(),
		membersCmd(),
		fundsCmd(),
		consistencyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func statsCmd() *cobra.Command {
	var period, owner string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show profit/loss overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get(fmt.Sprintf("/api/v1/stats/overview?period=%s&owner=%s", period, owner))
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "Period filter: daily, weekly, monthly, yearly")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner filter: myself or group")
	return cmd
}

func recordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Show best day, month and year",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/stats/records")
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func rankingsCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show member rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/stats/rankings?mode=" + mode)
			if err != nil {
				return err
			}

			var ranking struct {
				Mode string `json:"mode"`
				Full []struct {
					Rank   int    `json:"rank"`
					Name   string `json:"name"`
					Amount string `json:"amount"`
				} `json:"full"`
			}
			if err := json.Unmarshal(body, &ranking); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("Rankings (%s)\n", ranking.Mode)
			for _, row := range ranking.Full {
				fmt.Printf("%3d  %-20s %s\n", row.Rank, truncate(row.Name, 20), row.Amount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "group", "Ranking mode: group or rich")
	return cmd
}

func membersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "Show the roster with balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/members")
			if err != nil {
				return err
			}

			var members []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Balance string `json:"balance"`
			}
			if err := json.Unmarshal(body, &members); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			for _, m := range members {
				fmt.Printf("%-10s %-20s %s\n", m.ID, truncate(m.Name, 20), m.Balance)
			}
			return nil
		},
	}
}

func fundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "funds",
		Short: "Show the group pot and its sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/group/funds")
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
			if err != nil {
				return fmt.Errorf("error making request: %w", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("consistency check FAILED (status %d)\n%s", resp.StatusCode, string(body))
			}

			fmt.Println("Consistency check PASSED")
			return printRawJSON(body)
		},
	}
}

// get performs a GET against the API and returns the body on 200.
func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// printRawJSON re-indents a JSON body for the terminal.
func printRawJSON(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	printJSON(v)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render json: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
