package repository

import (
	"shareit/internal/infra"
	"shareit/internal/pkg/pgconv"
)

// wrapWriteErr classifies constraint violations so use cases can translate them.
func wrapWriteErr(msg string, err error) error {
	switch {
	case pgconv.IsUniqueViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case pgconv.IsForeignKeyViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}
