package models

import "time"

// Category is a node in the self-referential category tree. Children is a
// denormalized list of child ids; the database does not keep it in sync, so
// the create path must update the parent in the same write.
type Category struct {
	CategoryID  string    `json:"categoryId" bson:"categoryId"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    string    `json:"parent,omitempty" bson:"parent,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Level       int       `json:"level" bson:"level"`
	Path        string    `json:"path,omitempty" bson:"path,omitempty"`
	Children    []string  `json:"children,omitempty" bson:"children,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// CategoryNode is a category with its children expanded, for the tree view.
type CategoryNode struct {
	Category `bson:",inline"`
	Subs     []CategoryNode `json:"subs,omitempty" bson:"-"`
}
