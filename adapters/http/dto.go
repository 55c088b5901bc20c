package http

import (
	"github.com/khoahotran/devfinder/internal/domain/account"
	"github.com/khoahotran/devfinder/internal/view"
)

// Account DTOs

type AccountDTO struct {
	AvatarURL       string `json:"avatar_url"`
	Name            string `json:"name"`
	Login           string `json:"login"`
	CreatedAt       string `json:"created_at"`
	JoinedDate      string `json:"joined_date"`
	Bio             string `json:"bio"`
	PublicRepos     int    `json:"public_repos"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	Location        string `json:"location"`
	Blog            string `json:"blog"`
	TwitterUsername string `json:"twitter_username"`
	Company         string `json:"company"`
}

func ToAccountDTO(a account.Account) AccountDTO {
	return AccountDTO{
		AvatarURL:       a.AvatarURL,
		Name:            a.Name,
		Login:           a.Login,
		CreatedAt:       a.CreatedAt,
		JoinedDate:      view.FormatJoinedDate(a.CreatedAt),
		Bio:             a.Bio,
		PublicRepos:     a.PublicRepos,
		Followers:       a.Followers,
		Following:       a.Following,
		Location:        a.Location,
		Blog:            a.Blog,
		TwitterUsername: a.TwitterUsername,
		Company:         a.Company,
	}
}

// Session DTOs

type SessionDTO struct {
	DarkMode   bool       `json:"dark_mode"`
	SearchText string     `json:"search_text"`
	Loading    bool       `json:"loading"`
	ErrorMsg   string     `json:"error_msg"`
	Account    AccountDTO `json:"account"`
	Card       view.Card  `json:"card"`
}

func ToSessionDTO(s view.State) SessionDTO {
	return SessionDTO{
		DarkMode:   s.DarkMode,
		SearchText: s.SearchText,
		Loading:    s.Loading,
		ErrorMsg:   s.ErrorMsg,
		Account:    ToAccountDTO(s.Account),
		Card:       view.Present(s),
	}
}

type SearchTextRequest struct {
	Text string `json:"text"`
}

type SearchRequest struct {
	Username *string `json:"username"`
}
