// Package file stores ventas settings in a TOML file, by default
// ~/.ventas/config.toml. The directory can be moved with VENTAS_CONFIG_DIR.
package file
