package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/internal/extension"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// NewSymbolsCommand creates the symbols command.
func NewSymbolsCommand() *cobra.Command {
	var find string

	cmd := &cobra.Command{
		Use:   "symbols [table]",
		Short: "List symbol tables or the entries of one table",
		Long: `List the built-in symbol tables, plus an "extensions" table when the
extensions directory defines symbols. Name a table to list its entries.`,
		Example: `  # List tables
  gaia symbols

  # Show the math table
  gaia symbols math

  # Find every meaning of a symbol
  gaia symbols --find λ`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, t := range symbols.All() {
				names = append(names, t.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd, args, find)
		},
	}

	cmd.Flags().StringVar(&find, "find", "", "Show every table entry for this symbol")
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string, find string) error {
	cc := NewCommandContext(cmd)

	tables := symbols.All()
	exts, err := cc.loadExtensions()
	if err != nil {
		return err
	}
	if extTable := extension.Table(exts); extTable.Len() > 0 {
		tables = append(tables, extTable)
	}

	switch {
	case find != "":
		return showSymbol(cc.Renderer, tables, find)
	case len(args) == 1:
		for _, t := range tables {
			if t.Name == args[0] {
				return showTable(cc.Renderer, t)
			}
		}
		return fmt.Errorf("unknown symbol table %q", args[0])
	default:
		return listTables(cc.Renderer, tables)
	}
}

func listTables(r *output.Renderer, tables []symbols.Table) error {
	infos := make([]output.TableInfo, len(tables))
	for i, t := range tables {
		infos[i] = output.TableInfo{Name: t.Name, Description: t.Description, Entries: t.Len()}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	r.Header(1, fmt.Sprintf("Symbol Tables (%d)", len(infos)))
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, strconv.Itoa(info.Entries), info.Description}
	}
	r.Table([]string{"Table", "Entries", "Description"}, rows)
	return nil
}

func showTable(r *output.Renderer, t symbols.Table) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(t)
	}

	title := cases.Title(language.English).String(t.Name)
	r.Header(1, fmt.Sprintf("%s Symbols (%d)", title, t.Len()))
	if t.Description != "" {
		r.Muted(t.Description)
	}

	rows := make([][]string, len(t.Entries))
	for i, e := range t.Entries {
		rows[i] = []string{e.Symbol, e.Meaning, e.Category}
	}
	r.Table([]string{"Symbol", "Meaning", "Category"}, rows)
	return nil
}

func showSymbol(r *output.Renderer, tables []symbols.Table, symbol string) error {
	var found []symbols.Entry
	for _, t := range tables {
		for _, e := range t.Entries {
			if e.Symbol == symbol {
				e.Category = t.Name
				found = append(found, e)
			}
		}
	}
	if len(found) == 0 {
		return fmt.Errorf("symbol %q is not in any table", symbol)
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].Category < found[j].Category })

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(found)
	}

	rows := make([][]string, len(found))
	for i, e := range found {
		rows[i] = []string{e.Category, e.Meaning}
	}
	r.Table([]string{"Table", "Meaning"}, rows)
	return nil
}
