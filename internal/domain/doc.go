// Package domain defines the core business types for the newsletter service.
//
// Types in this package are value objects: they hold data that has already
// passed its validation gate, and expose it read-only. They are the shared
// language between handlers, services, and repositories.
//
// Rules for this package:
//   - Only imports from internal/pkg/ are allowed, never from services or cmd
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - Constructors validate; there are no setters
//   - Codec methods (JSON, database/sql) must decode through the constructor
package domain
