// Package database opens the relational database that backs the database
// snapshot source.
//
// Connect supports MySQL and SQLite through GORM. Open wraps any dialector,
// which lets tests run against go-sqlmock behind the MySQL dialector.
// TableColumns reads a table's column order, which decides which column is
// the subject when a whole table is turned into a graph.
//
//	db, err := database.Connect(cfg.Database)
//	cols, err := database.TableColumns(db, "follows")
package database
