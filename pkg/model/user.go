package model

type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
}

type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
