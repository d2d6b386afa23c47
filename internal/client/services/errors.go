package services

import (
	"errors"

	"github.com/dmitrijs2005/todoapi/internal/client/client"
)

func isUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}
