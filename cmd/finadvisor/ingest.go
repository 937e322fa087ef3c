package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Add Markdown, text or HTML documents to the knowledge base",
	Long: `Ingest chunks and embeds documents into the knowledge base. Without arguments
the knowledge directory inside the runtime path is ingested. Re-ingesting a file
replaces its earlier chunks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := bootstrap(cmd)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if len(args) == 0 {
			args = []string{a.cfg.GetKnowledgePath()}
		}

		total := 0
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			var n int
			if info.IsDir() {
				n, err = a.knowledge.IngestDir(ctx, path)
			} else {
				n, err = a.knowledge.IngestFile(ctx, path)
			}
			if err != nil {
				return err
			}
			total += n
		}
		fmt.Printf("ingested %d chunks\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
