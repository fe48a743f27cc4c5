package web

type Profile struct {
	Id            int64  `json:"id"`
	Nickname      string `json:"nickname"`
	Email         string `json:"email"`
	IsAdmin       bool   `json:"isAdmin"`
	Balance       int64  `json:"balance"`
	LastLoginDate string `json:"lastLoginDate,omitempty"`
}

type SendCodeReq struct {
	Email string `json:"email"`
}

type LoginReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
