package postgres

// PostgreSQL が返す SQLSTATE コードです。
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"

	// 主キーは UUID のため、形式が不正な ID はこのコードで拒否されます。
	invalidTextRepresentationCode = "22P02"
)
