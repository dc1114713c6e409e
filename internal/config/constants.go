package config

const (
	// DefaultDatabasePath is the default path for the SQLite library database
	DefaultDatabasePath = "./smartlibrary.db"

	// DefaultTasksDatabasePath is used for the task queue when the library
	// database is not a SQLite file
	DefaultTasksDatabasePath = "./smartlibrary-tasks.db"

	// DefaultLoanPeriodDays is the due period applied to every new loan
	DefaultLoanPeriodDays = 7

	// DefaultBorrowLimit is the maximum number of open loans per member
	DefaultBorrowLimit = 3
)
