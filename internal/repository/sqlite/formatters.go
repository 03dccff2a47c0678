package sqlite

import "database/sql"

// NullableString maps an empty string to SQL NULL.
func NullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// StringFromNull returns the string value, or "" for NULL.
func StringFromNull(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
