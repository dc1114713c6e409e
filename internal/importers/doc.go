// Package importers loads a YAML catalog into the library.
//
// # Architecture
//
// The import pipeline follows a simple flow:
//
//	catalog.yaml → ParseCatalog → Catalog → Pipeline → library.Service / auth.Service
//
// Every record goes through the same service calls the API uses, so the usual
// business rules apply. Records that already exist are counted as skipped, so
// importing the same file twice is harmless.
//
// # Catalog Format
//
//	members:
//	  - id: M001
//	    name: Ada Lovelace
//	    email: ada@example.com
//	books:
//	  - isbn: "9780441013593"
//	    title: Dune
//	    author: Frank Herbert
//	    genre: Science Fiction
//	    copies: 2
//	clubs:
//	  - name: Sci-Fi Circle
//	    description: Monthly meetups
//	    members: [M001]
//	users:
//	  - username: frontdesk
//	    password: change-me-please
//	    role: librarian
//
// Members are imported before books, clubs and users because clubs and users
// refer to them.
package importers
