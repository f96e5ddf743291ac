// Package tabular parses branch sales exports into domain.SalesRecord values.
//
// Two formats are supported: comma separated text (.csv) and Excel workbooks
// (.xlsx, first sheet only). Both expect a header row naming at least the
// columns IdTransaccion, Fecha, IdCategoria, IdProducto, Producto, Cantidad,
// PrecioUnitario and TotalVenta. Header matching ignores case and surrounding
// whitespace; extra columns are ignored. Branch fields are not read from the
// file, the caller derives them from the filename.
//
// Every failure is reported wrapped in domain.ErrFileParse, with the 1-based
// row number when a value could not be converted.
package tabular
