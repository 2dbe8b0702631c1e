// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: a blank import of this package runs the
// init functions of each concrete backend, which register their factories
// with the storage package. Binaries that want only a subset of backends can
// blank-import the individual packages instead.
package all

import (
	_ "github.com/priyam0k/claim-data-pipeline/internal/storage/mssql"
	_ "github.com/priyam0k/claim-data-pipeline/internal/storage/mysql"
	_ "github.com/priyam0k/claim-data-pipeline/internal/storage/postgres"
	_ "github.com/priyam0k/claim-data-pipeline/internal/storage/sqlite"
)
