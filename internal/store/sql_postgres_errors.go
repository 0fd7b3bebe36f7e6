package store

import "github.com/jackc/pgerrcode"

// classifyPostgres reads the SQLSTATE of a pgx error. Unique failures keep
// the constraint name and detail, which name the offending users column
// ("users_email_key", "Key (username)=(alice) already exists.").
func classifyPostgres(err error) driverFailure {
	pgErr, ok := asPgError(err)
	if !ok {
		return driverFailure{kind: failureOther}
	}

	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return driverFailure{kind: failureUnique, constraint: pgErr.ConstraintName + " " + pgErr.Detail}
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		return driverFailure{kind: failureForeignKey}
	case pgerrcode.IsConnectionException(pgErr.Code), pgErr.Code == pgerrcode.CannotConnectNow:
		return driverFailure{kind: failureUnavailable}
	default:
		return driverFailure{kind: failureOther}
	}
}
