package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry. Name and Avatar are the author's display fields
// captured at creation time; they are not kept in sync with later profile
// edits. Likes and comments are embedded most-recent-first.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// Like records a single user's like. A user appears at most once in a
// post's like list.
type Like struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an embedded post comment with its own id and the commenter's
// display fields captured at creation time.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}
