package model

import "time"

// Article is a post owned by exactly one User.
//
// UserID is not a schema-level foreign key: the store only writes an article
// when the owner exists at that moment, and deleting a user leaves their
// articles in place.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Author is the slice of the owning user that is joined onto an article.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ArticleDetail is an Article enriched with its owner's name and email.
//
// Embedding Article flattens its fields into the JSON object:
//
//	{"id":1,"title":"...","content":"...","user_id":7,"created_at":"...",
//	 "author":{"id":7,"name":"A","email":"a@x.com"}}
type ArticleDetail struct {
	Article
	Author Author `json:"author"`
}
