package core

import "github.com/google/uuid"

// Identifier tells GPU resource generations apart.
type Identifier uuid.UUID

var InvalidIdentifier = Identifier(uuid.Nil)

func IdentifierNew() Identifier {
	return Identifier(uuid.New())
}

func (id Identifier) IsValid() bool {
	return id != InvalidIdentifier
}

func (id Identifier) String() string {
	return uuid.UUID(id).String()
}
