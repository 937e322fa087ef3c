package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/spf13/cobra"
)

var (
	askProfile string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the advisor a question",
	Example: `  finadvisor ask "How big should my emergency fund be?"
  finadvisor ask "5000 per month at 12% for 10 years, is that enough for retirement?"
  finadvisor ask --profile moderate "How should I split my savings?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := bootstrap(cmd)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		q := advisor.Query{Text: strings.Join(args, " ")}
		if askProfile != "" {
			p, err := risk.ParseProfile(askProfile)
			if err != nil {
				return err
			}
			q.Profile = &p
		}

		resp, err := a.advisor.Advise(ctx, q)
		if err != nil {
			return err
		}

		if askJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		fmt.Println(resp.Narrative)
		for _, al := range resp.Allocation {
			fmt.Printf("  %3s%%  %s\n", al.Percent, al.AssetClass)
		}
		if len(resp.CitedChunks) > 0 {
			fmt.Printf("\nsources: %s\n", strings.Join(resp.CitedChunks, ", "))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askProfile, "profile", "p", "", "risk profile: conservative, moderate or aggressive")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full response as JSON")
	rootCmd.AddCommand(askCmd)
}
