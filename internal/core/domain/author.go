package domain

// Author is an independent entity shared across books. The store assigns the
// ID on insert; "author exists" is an exact (FirstName, LastName) match
// performed by the application before insert, not a store constraint.
type Author struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}
