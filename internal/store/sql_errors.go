package store

import "strings"

// failureKind names the driver condition behind a failed statement. It is
// logged as "db_failure" and decides how a users insert failure is reported.
type failureKind string

const (
	failureOther       failureKind = "other"
	failureUnique      failureKind = "unique_violation"
	failureForeignKey  failureKind = "foreign_key_violation"
	failureUnavailable failureKind = "unavailable"
)

// driverFailure is a classified driver error. constraint is only set for
// unique failures and holds text that names the violated column.
type driverFailure struct {
	kind       failureKind
	constraint string
}

func (f driverFailure) String() string {
	return string(f.kind)
}

// failureClassifier classifies the driver errors of one dialect.
type failureClassifier func(err error) driverFailure

func (db *DB) classify(err error) driverFailure {
	if db.classifyFailure == nil {
		return driverFailure{kind: failureOther}
	}

	return db.classifyFailure(err)
}

// uniqueViolation reports whether err is a unique-constraint failure and, if
// so, which users column caused it.
func (db *DB) uniqueViolation(err error) (column string, ok bool) {
	failure := db.classify(err)
	if failure.kind != failureUnique {
		return "", false
	}

	return constraintColumn(failure.constraint), true
}

// constraintColumn extracts the column from a constraint name such as
// "users_email_key" or an SQLite message such as
// "UNIQUE constraint failed: users.username".
func constraintColumn(s string) string {
	switch {
	case strings.Contains(s, "username"):
		return "username"
	case strings.Contains(s, "email"):
		return "email"
	default:
		return ""
	}
}
