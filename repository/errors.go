package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateKey surfaces a uniqueness-constraint failure on a generated
// identifier. Callers report the conflict; nothing retries.
var ErrDuplicateKey = errors.New("duplicate key")

func wrapDuplicate(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
