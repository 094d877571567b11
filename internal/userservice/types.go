package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	// AccessTokenTime is the fixed lifetime of an issued bearer token.
	AccessTokenTime time.Duration = 1 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	c      *common.Cache
	secret string
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Blogs is the denormalized list of blogs owned by the user. It is
	// derived from the blogs table at read time and is never consulted
	// for authorization; the blog's own user_id is authoritative.
	Blogs []UserBlog `json:"blogs"`
}

type UserBlog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

// LoginResult is returned to a successfully authenticated user.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
