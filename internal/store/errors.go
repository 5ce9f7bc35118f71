package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/matheus3301/pairchat/internal/connection"
	"github.com/matheus3301/pairchat/internal/identity"
)

// Unique-constraint outcomes, shared with the domain packages that
// classify them.
var (
	ErrPairTaken = connection.ErrPairTaken
	ErrNameTaken = identity.ErrUsernameTaken
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
