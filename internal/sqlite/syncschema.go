package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/random"
)

// migrateTo ensures that the db schema matches the target schema definition.
//
// We employ a very simple declarative schema migration that:
//
// 1. Deletes deleted tables,
// 2. Creates new tables,
// 3. Migrates changed tables using 12-step schema migration https://www.sqlite.org/lang_altertable.html#otheralter,
// 4. Recreates indexes and triggers that differ from the target schema.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/
func (db *Database) migrateTo(ctx context.Context, schemaDefinition string) (err error) {
	// Foreign key enforcement and ATTACH cannot change inside a transaction, so the migration pins one connection.
	conn, err := db.ReadWrite.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "release connection"))
		}
	}()

	// Create schema against a temporary database so that we know what has changed.
	var (
		randomID     string
		dbNameLength uint = 20
	)
	if randomID, err = random.Letters(dbNameLength); err != nil {
		return errors.Wrap(err, "generate random ID")
	}
	schemaTargetDataSourceName := fmt.Sprintf("file:%s?mode=memory&cache=shared", randomID)
	schemaTargetDatabase, err := sql.Open("sqlite3", schemaTargetDataSourceName)
	if err != nil {
		return errors.Wrap(err, "open schema target database")
	}
	defer func() {
		if closeErr := schemaTargetDatabase.Close(); closeErr != nil {
			closeErr = errors.Wrap(closeErr, "close schema target database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target database",
				errors.SlogError(closeErr))
		}
	}()
	// The shared in-memory database lives as long as this connection is open.
	if err = schemaTargetDatabase.PingContext(ctx); err != nil {
		return errors.Wrap(err, "connect schema target database")
	}
	if _, err = schemaTargetDatabase.ExecContext(ctx, schemaDefinition); err != nil {
		return errors.Wrap(err, "migrate schema target database")
	}

	// 12-step schema migration starts here. See https://www.sqlite.org/lang_altertable.html#otheralter.

	// Step 1: Disable foreign key validation temporarily.
	if _, err = conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign key validation")
	}
	// Step 12: Re-enable foreign key validation.
	defer func() {
		if _, fkErr := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, errors.Wrap(fkErr, "re-enable foreign key validation"))
		}
	}()

	if _, err = conn.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", schemaTargetDataSourceName); err != nil {
		return errors.Wrap(err, "attach schema target database")
	}
	defer func() {
		if _, detachErr := conn.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			detachErr = errors.Wrap(detachErr, "detach schema target database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to detach schema target database",
				errors.SlogError(detachErr))
		}
	}()

	// Step 2: Start transaction.
	var tx *sqlx.Tx
	if tx, err = conn.BeginTxx(ctx, nil); err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			rollbackErr = errors.Wrap(rollbackErr, "rollback")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", errors.SlogError(rollbackErr))
		}
	}()

	// Step 3-7 migrate tables.
	if err = db.migrateTables(ctx, tx); err != nil {
		return errors.Wrap(err, "migrate tables")
	}

	// Step 8: Recreate indexes and triggers associated with table if needed.
	// Step 9: Recreate views associated with table.
	for _, objectType := range []string{"index", "trigger", "view"} {
		if err = db.migrateObjects(ctx, tx, objectType); err != nil {
			return errors.Wrap(err, "migrate objects", slog.String("type", objectType))
		}
	}

	// Step 10: Check foreign key constraints.
	var violations []string
	if violations, err = queryStrings(ctx, tx, "SELECT \"table\" FROM pragma_foreign_key_check"); err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	if len(violations) > 0 {
		return errors.New("foreign key violations", slog.Any("tables", violations))
	}

	// Step 11: Commit transaction from step 2.
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	// Step 12: is in defer above.

	return nil
}

// migrateTables ensures table schema is synchronized between databases.
func (db *Database) migrateTables(ctx context.Context, tx *sqlx.Tx) error {
	// Step 3: Remember schema (also includes trivial creation and deletion of tables).
	var err error

	// Drop deleted tables.
	var deletedTables []string
	if deletedTables, err = queryStrings(ctx, tx, `SELECT current.name AS deleted_table
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name=target.name AND current.type=target.type
WHERE current.type = 'table' AND target.type IS NULL AND current.name NOT LIKE 'sqlite_%';`); err != nil {
		return errors.Wrap(err, "query deleted tables")
	}
	for _, table := range deletedTables {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", table))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q;", table)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", table))
		}
	}

	// Create new tables.
	var newTableSQLs []string
	if newTableSQLs, err = queryStrings(ctx, tx, `SELECT target.sql AS sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current ON current.name=target.name AND current.type=target.type
WHERE target.type = 'table' AND current.type IS NULL AND target.name NOT LIKE 'sqlite_%';`); err != nil {
		return errors.Wrap(err, "query new tables")
	}
	for _, newTableSQL := range newTableSQLs {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", newTableSQL))
		if _, err = tx.ExecContext(ctx, newTableSQL); err != nil {
			return errors.Wrap(err, "create table")
		}
	}

	// Identify tables with changed schema and continue the 12-step schema migration with them.
	var changedTables []changedObject
	if err = tx.SelectContext(ctx, &changedTables, `SELECT
    current.name AS name,
    current.sql AS current_sql,
    target.sql AS new_sql
FROM main.sqlite_schema AS current
JOIN schemaTarget.sqlite_schema AS target ON current.name=target.name AND current.type=target.type
WHERE current.type = 'table' AND current.name NOT LIKE 'sqlite_%' AND current.sql <> target.sql;`); err != nil {
		return errors.Wrap(err, "query changed tables")
	}

	for _, table := range changedTables {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
			slog.String("table", table.Name),
			slog.String("current_sql", table.CurrentSQL),
			slog.String("new_sql", table.NewSQL))

		// Step 4: Create tables according to new schema on temporary names.
		tempName := table.Name + "_migration_temp"
		tempNameSQL := strings.Replace(table.NewSQL, table.Name, tempName, 1)
		if _, err = tx.ExecContext(ctx, tempNameSQL); err != nil {
			return errors.Wrap(err, "create new table to temporary name", slog.String("query", tempNameSQL))
		}

		// Step 5: Copy common columns between tables.
		var commonColumns []string
		// We wrap the column names in with double quotes to handle column names that are SQLite keywords.
		if commonColumns, err = queryStrings(ctx, tx, `SELECT '"' || target.name || '"'
FROM pragma_table_info(?, 'main') AS current
JOIN pragma_table_info(?, 'schemaTarget') AS target ON target.name = current.name;`,
			table.Name, table.Name); err != nil {
			return errors.Wrap(err, "query common columns")
		}
		common := strings.Join(commonColumns, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s;", //nolint: gosec // we trust the query.
			tempName, common, common, table.Name)
		db.logger.LogAttrs(ctx, slog.LevelInfo, "copying data", slog.String("query", copySQL))
		if _, err = tx.ExecContext(ctx, copySQL); err != nil {
			return errors.Wrap(err, "copy data")
		}

		// Step 6: Drop the old table.
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q;", table.Name)); err != nil {
			return errors.Wrap(err, "drop old table")
		}

		// Step 7: Rename new table to old table's name.
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %q RENAME TO %q;", tempName, table.Name)); err != nil {
			return errors.Wrap(err, "rename new table")
		}
	}
	return nil
}

// migrateObjects drops the indexes, triggers or views that are missing or different in the target schema and creates
// the ones the current schema lacks. Table rebuilds drop their indexes and triggers, so those get recreated here too.
func (db *Database) migrateObjects(ctx context.Context, tx *sqlx.Tx, objectType string) error {
	var (
		stale []string
		err   error
	)
	// Automatic indexes have NULL sql and are managed by SQLite.
	if stale, err = queryStrings(ctx, tx, `SELECT current.name
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name=target.name AND current.type=target.type
WHERE current.type = ? AND current.sql IS NOT NULL AND (target.sql IS NULL OR current.sql <> target.sql);`,
		objectType); err != nil {
		return errors.Wrap(err, "query stale objects")
	}
	for _, name := range stale {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
			slog.String("type", objectType), slog.String("name", name))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP %s %q;", strings.ToUpper(objectType), name)); err != nil {
			return errors.Wrap(err, "drop object", slog.String("name", name))
		}
	}

	var missing []string
	if missing, err = queryStrings(ctx, tx, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current ON current.name=target.name AND current.type=target.type
WHERE target.type = ? AND target.sql IS NOT NULL AND current.type IS NULL;`, objectType); err != nil {
		return errors.Wrap(err, "query missing objects")
	}
	for _, query := range missing {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object", slog.String("query", query))
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return errors.Wrap(err, "create object", slog.String("query", query))
		}
	}
	return nil
}

type changedObject struct {
	Name       string `db:"name"`
	CurrentSQL string `db:"current_sql"`
	NewSQL     string `db:"new_sql"`
}

// queryStrings returns a single column of strings from a query and its args.
func queryStrings(ctx context.Context, tx *sqlx.Tx, query string, args ...any) ([]string, error) {
	var results []string
	if err := tx.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, errors.Wrap(err, "select")
	}
	return results, nil
}
