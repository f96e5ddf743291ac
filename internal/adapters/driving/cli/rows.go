package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
)

var (
	rowsLimit int
	rowsJSON  bool
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Show consolidated sales rows",
	Long: `Prints the rows of Ventas_Consolidadas in insertion order.
Use --limit 0 to print every row.`,
	Args: cobra.NoArgs,
	RunE: runRows,
}

func init() {
	rowsCmd.Flags().IntVarP(&rowsLimit, "limit", "n", 50, "maximum number of rows (0 for all)")
	rowsCmd.Flags().BoolVar(&rowsJSON, "json", false, "output rows as JSON")
	rootCmd.AddCommand(rowsCmd)
}

// rowJSON is the JSON shape of a consolidated row; keys follow the table columns.
type rowJSON struct {
	IdTransaccion  int64           `json:"IdTransaccion"`
	IdLocal        int             `json:"IdLocal"`
	Sucursal       string          `json:"Sucursal"`
	Fecha          string          `json:"Fecha"`
	IdCategoria    int64           `json:"IdCategoria"`
	IdProducto     int64           `json:"IdProducto"`
	Producto       string          `json:"Producto"`
	Cantidad       int64           `json:"Cantidad"`
	PrecioUnitario decimal.Decimal `json:"PrecioUnitario"`
	TotalVenta     decimal.Decimal `json:"TotalVenta"`
}

func runRows(cmd *cobra.Command, _ []string) error {
	if inventoryService == nil {
		return errors.New("inventory service not configured")
	}

	records, err := inventoryService.FetchAllRows(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No consolidated data yet. Run 'ventas consolidate'.")
			return nil
		}
		return fmt.Errorf("failed to read rows: %w", err)
	}

	total := len(records)
	if rowsLimit > 0 && len(records) > rowsLimit {
		records = records[:rowsLimit]
	}

	if rowsJSON {
		out := make([]rowJSON, 0, len(records))
		for _, r := range records {
			out = append(out, rowJSON{
				IdTransaccion:  r.TransactionID,
				IdLocal:        r.LocalID,
				Sucursal:       r.Branch,
				Fecha:          r.Date,
				IdCategoria:    r.CategoryID,
				IdProducto:     r.ProductID,
				Producto:       r.Product,
				Cantidad:       r.Quantity,
				PrecioUnitario: r.UnitPrice,
				TotalVenta:     r.TotalSale,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if total == 0 {
		cmd.Println("The consolidated table is empty.")
		return nil
	}

	p := newPrinter(cmd)
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.FormatInt(r.TransactionID, 10),
			strconv.Itoa(r.LocalID),
			r.Branch,
			r.Date,
			strconv.FormatInt(r.CategoryID, 10),
			strconv.FormatInt(r.ProductID, 10),
			r.Product,
			strconv.FormatInt(r.Quantity, 10),
			r.UnitPrice.StringFixed(2),
			r.TotalSale.StringFixed(2),
		})
	}
	cmd.Println(p.Table([]string{
		"IdTransaccion", "IdLocal", "Sucursal", "Fecha", "IdCategoria",
		"IdProducto", "Producto", "Cantidad", "PrecioUnitario", "TotalVenta",
	}, rows))
	cmd.Printf("Showing %d of %d rows\n", len(records), total)
	return nil
}
