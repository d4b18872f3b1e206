// Command jetdump is a thin cobra CLI over pkg/jet's Facade, for
// inspecting a .mdb file from a shell: list its tables, list a table's
// columns, or dump its rows.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/martti/tsjetdb/pkg/jetdb"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	godotenv.Load()
}

func main() {
	root := &cobra.Command{
		Use:   "jetdump",
		Short: "Inspect a Microsoft Access (JET3/JET4) database file",
	}

	root.AddCommand(tablesCommand())
	root.AddCommand(columnsCommand())
	root.AddCommand(rowsCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <file>",
		Short: "List the user tables in a database file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			for _, name := range db.Tables() {
				fmt.Println(name)
			}

			return nil
		},
	}
}

func columnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <file> <table>",
		Short: "List a table's column names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			cols, err := db.Columns(args[1])
			if err != nil {
				return err
			}

			for _, name := range cols {
				fmt.Println(name)
			}

			return nil
		},
	}
}

func rowsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <file> <table>",
		Short: "Dump a table's decoded rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Rows(args[1])
			if err != nil {
				return err
			}

			for _, row := range rows {
				printRow(row)
			}

			return nil
		},
	}
}

func printRow(row jetdb.Row) {
	for i, col := range row.Columns {
		if i > 0 {
			fmt.Print("\t")
		}

		if col.IsNull() {
			fmt.Print("<null>")
			continue
		}

		switch col.Kind {
		case jetdb.KindBool:
			fmt.Print(col.Bool())
		case jetdb.KindByte:
			fmt.Print(col.Byte())
		case jetdb.KindInt16:
			fmt.Print(col.Int16())
		case jetdb.KindInt32:
			fmt.Print(col.Int32())
		case jetdb.KindFloat64:
			fmt.Print(col.Float64())
		case jetdb.KindRawDateTime:
			fmt.Print(col.RawDateTime())
		default:
			fmt.Print(col.Str())
		}
	}

	fmt.Println()
}
