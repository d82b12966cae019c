package commands

import (
	"fmt"
	"time"

	"securecheck-api/seed"
	"securecheck-api/web"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
)

func (a *app) seedCmd() *cobra.Command {
	var (
		count     int
		batch     int
		fakerSeed uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert synthetic stops into the ledger (development only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if fakerSeed == 0 {
				fakerSeed = uint64(time.Now().UnixNano())
			}
			g := seed.NewGenerator(gofakeit.New(fakerSeed))
			if err := seed.Seed(cmd.Context(), store.DB(), g, count, batch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %s synthetic stops\n", web.Comma(count))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1000, "number of stops to insert")
	cmd.Flags().IntVar(&batch, "batch", seed.DefaultBatchSize, "rows per insert statement")
	cmd.Flags().Uint64Var(&fakerSeed, "seed", 0, "faker seed (0 picks one from the clock)")
	return cmd
}
