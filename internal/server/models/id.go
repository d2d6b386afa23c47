package models

import (
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh 24-hex-digit identifier. All stores use this form so
// that id validation does not depend on the backend.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID validates id and returns its canonical lowercase form. A malformed
// id yields an error wrapping common.ErrorNotFound.
func ParseID(id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", fmt.Errorf("%w: malformed id %q", common.ErrorNotFound, id)
	}
	return oid.Hex(), nil
}
