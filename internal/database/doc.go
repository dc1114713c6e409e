// Package database provides the data access layer for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Driver selection, migrations, transactions
//	├── authors/         # Author lookup-or-create
//	├── books/           # Catalog rows and copy counters
//	├── members/         # Member records
//	├── loans/           # Loans and the borrowed/overdue views
//	├── clubs/           # Book clubs and club membership
//	├── notices/         # Overdue notices written by the scan
//	└── users/           # Login accounts
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over a *gorm.DB. The handle
// may be a transaction, which is how the service layer groups several
// repository calls into one atomic operation:
//
//	db, err := database.NewDatabase(cfg.Database, logger)
//
//	err = db.Transaction(ctx, func(tx *gorm.DB) error {
//		n, err := books.NewRepository(tx).DecrementAvailable(isbn)
//		...
//		return loans.NewRepository(tx).Create(&loan)
//	})
//
// Repositories return gorm errors untouched (gorm.ErrRecordNotFound,
// gorm.ErrDuplicatedKey); mapping them to business errors is the caller's job.
//
// # Drivers
//
// SQLite is the default. PostgreSQL and MySQL are selected with
// DATABASE_DRIVER and run their transactions at SERIALIZABLE.
package database
