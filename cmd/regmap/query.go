package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"regmap/internal"
	"regmap/internal/config"
	"regmap/internal/lookup"
	"regmap/internal/pipeline"
)

func lookupCmd(cfg *config.Config) *cobra.Command {
	var (
		address string
		source  string
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up a register name by address",
		Long: `Look up a register by its hex address in a stored register map or in a
CSV table, and print the 32-bit pair label starting at that address.

Example:
  regmap lookup --address 0x007C --source HM-60506E.pdf
  regmap lookup --address 0080h --csv Server/resources/ArKd2RegisterMap.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(address)
			if err != nil {
				return err
			}

			var entries []internal.RegisterEntry
			if csvPath != "" {
				entries, err = pipeline.LoadEntries(pipeline.InputCSV, csvPath)
			} else {
				entries, err = storedEntries(cfg, source)
			}
			if err != nil {
				return err
			}

			table := lookup.New(entries)
			name, ok := table.Name(addr)
			if !ok {
				return fmt.Errorf("address 0x%04X not in register map (%d entries)", addr, table.Len())
			}
			fmt.Printf("0x%04X: %s\n", addr, name)
			fmt.Printf("pair: %s\n", table.Label(addr))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "register address, e.g. 0x007D or 007DH (required)")
	cmd.Flags().StringVar(&source, "source", "", "stored register map (manual file name); defaults to the only one")
	cmd.Flags().StringVar(&csvPath, "csv", "", "read the table from a CSV file instead of the database")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func storedEntries(cfg *config.Config, source string) ([]internal.RegisterEntry, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if source == "" {
		sources, err := db.ListSources()
		if err != nil {
			return nil, err
		}
		switch len(sources) {
		case 0:
			return nil, fmt.Errorf("no register maps stored; run generate first")
		case 1:
			source = sources[0].Source
		default:
			return nil, fmt.Errorf("%d register maps stored; pick one with --source", len(sources))
		}
	}
	if _, err := db.MustRegisterMap(source); err != nil {
		return nil, err
	}
	return db.ListRegisters(source)
}

func sourcesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List register maps stored in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			sources, err := db.ListSources()
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				fmt.Println("no register maps stored")
				return nil
			}
			for _, s := range sources {
				fmt.Printf("%s\tpages=%s\textractor=%s\tentries=%d\tupdated=%s\n",
					s.Source, s.Pages, s.Extractor, s.EntryCount, s.UpdatedAt)
			}
			return nil
		},
	}
}
