package model

import (
	"errors"
	"fmt"
)

// Collection is the wire name of a stored record set.
type Collection string

const (
	CollectionUsers            Collection = "users"
	CollectionClassRequests    Collection = "classesRequests"
	CollectionCreditRequests   Collection = "creditRequests"
	CollectionGuestList        Collection = "guestList"
	CollectionNotices          Collection = "notices"
	CollectionUpcomingConcerts Collection = "upcomingConcerts"
)

// ErrUnknownCollection is returned for collection names outside the schema.
var ErrUnknownCollection = errors.New("unknown collection")

var collectionTables = map[Collection]string{
	CollectionUsers:            "users",
	CollectionClassRequests:    "class_requests",
	CollectionCreditRequests:   "credit_requests",
	CollectionGuestList:        "guest_list",
	CollectionNotices:          "notices",
	CollectionUpcomingConcerts: "upcoming_concerts",
}

// editableFields are the columns the document browser may overwrite.
// The guest list is an audit trail and is not editable.
var editableFields = map[Collection][]string{
	CollectionUsers:            {"name", "email", "role", "credits"},
	CollectionClassRequests:    {"requested_date", "requested_time"},
	CollectionCreditRequests:   {"amount", "proof_message", "payment_method"},
	CollectionNotices:          {"body", "author"},
	CollectionUpcomingConcerts: {"title", "venue", "location", "concert_date", "concert_time", "author"},
}

// Collections lists every browsable collection in display order.
var Collections = []Collection{
	CollectionUsers,
	CollectionClassRequests,
	CollectionCreditRequests,
	CollectionGuestList,
	CollectionNotices,
	CollectionUpcomingConcerts,
}

// ParseCollection resolves a wire name, accepting the lowercase "guestlist" alias.
func ParseCollection(name string) (Collection, error) {
	if name == "guestlist" {
		return CollectionGuestList, nil
	}
	c := Collection(name)
	if _, ok := collectionTables[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}

// Table returns the backing table name.
func (c Collection) Table() string {
	return collectionTables[c]
}

// EditableFields returns the columns of c that may be edited directly.
func (c Collection) EditableFields() []string {
	return editableFields[c]
}

// IsRequest reports whether c holds approvable requests.
func (c Collection) IsRequest() bool {
	return c == CollectionClassRequests || c == CollectionCreditRequests
}
