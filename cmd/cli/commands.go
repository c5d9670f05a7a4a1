package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gostock/adapters/excel"
	"gostock/domain/core"
	"gostock/domain/record"
	"gostock/internal"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gostock-cli",
		Short:         "Append rows to spreadsheet-backed stock tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCreateCmd(),
		newAppendCmd(),
		newShowCmd(),
		newExportCmd(),
	)

	return rootCmd
}

func newStore() *excel.Store {
	config := excel.DefaultStoreConfig()
	config.Logger = internal.NewLoggerTo(internal.LogLevelWarn, os.Stderr)
	if level, ok := internal.ParseLogLevel(os.Getenv("LOG_LEVEL")); ok {
		config.Logger = internal.NewLoggerTo(level, os.Stderr)
	}
	return excel.NewStore(config)
}

func newCreateCmd() *cobra.Command {
	var file string
	var columns []string
	var force bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a header-only spreadsheet",
		Long: `Create a spreadsheet containing only a header row.

Example: gostock-cli create --file stock_data.xlsx --columns Name,Qty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), cmd.OutOrStdout(), file, columns, force)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "stock_data.xlsx", "Spreadsheet path")
	cmd.Flags().StringSliceVar(&columns, "columns", []string{"Column_1", "Column_2"}, "Column names")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func runCreate(ctx context.Context, out io.Writer, file string, columns []string, force bool) error {
	store := newStore()

	schema, err := record.NewSchema(columns)
	if err != nil {
		return err
	}

	exists, err := store.Exists(ctx, file)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", file)
	}

	if err := store.CreateEmpty(ctx, file, schema); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s with columns %s\n", file, strings.Join(schema, ", "))
	return nil
}

func newAppendCmd() *cobra.Command {
	var file string
	var columns []string
	var sets []string

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append one row and save the file",
		Long: `Load the spreadsheet, append one row and save it back.
A missing file is created first using --columns.

Example: gostock-cli append --file stock_data.xlsx --set Name=Bolt --set Qty=10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			return runAppend(cmd.Context(), cmd.OutOrStdout(), file, columns, item)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "stock_data.xlsx", "Spreadsheet path")
	cmd.Flags().StringSliceVar(&columns, "columns", []string{"Column_1", "Column_2"}, "Columns used when the file does not exist")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Column value as column=value (repeatable)")

	return cmd
}

func runAppend(ctx context.Context, out io.Writer, file string, columns []string, item record.Draft) error {
	store := newStore()

	fallback, err := record.NewSchema(columns)
	if err != nil {
		return err
	}

	table, err := store.Load(ctx, file, fallback)
	if err != nil {
		return err
	}
	table, err = table.Append(item)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, table, file); err != nil {
		return err
	}

	fmt.Fprintf(out, "Appended row %d to %s\n", table.Len(), file)
	return nil
}

// parseAssignments turns column=value flags into a draft.
// Only the first '=' separates; values may be empty.
func parseAssignments(sets []string) (record.Draft, error) {
	item := make(record.Draft, len(sets))
	for _, set := range sets {
		col, value, ok := strings.Cut(set, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --set %q, expected column=value", set)
		}
		if _, dup := item[col]; dup {
			return nil, fmt.Errorf("column %q set more than once", col)
		}
		item[col] = value
	}
	return item, nil
}

func newShowCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the table stored in a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "stock_data.xlsx", "Spreadsheet path")

	return cmd
}

func loadExisting(ctx context.Context, store *excel.Store, file string) (record.Table, error) {
	exists, err := store.Exists(ctx, file)
	if err != nil {
		return record.Table{}, err
	}
	if !exists {
		return record.Table{}, fmt.Errorf("%s does not exist", file)
	}
	return store.Load(ctx, file, nil)
}

func runShow(ctx context.Context, out io.Writer, file string) error {
	table, err := loadExisting(ctx, newStore(), file)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Schema(), "\t"))
	for _, row := range table.Rows() {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "(%d rows)\n", table.Len())
	return nil
}

func newExportCmd() *cobra.Command {
	var file string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a download copy with column A formatted as 0.00",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout(), file, output)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "stock_data.xlsx", "Spreadsheet path")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output path (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(ctx context.Context, out io.Writer, file, output string) error {
	store := newStore()
	table, err := loadExisting(ctx, store, file)
	if err != nil {
		return err
	}

	data, err := store.Export(ctx, table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return core.NewIOError(output, err)
	}

	fmt.Fprintf(out, "Exported %d rows to %s\n", table.Len(), output)
	return nil
}
