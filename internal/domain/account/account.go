package account

import "context"

// Account is the public profile of a GitHub user. JSON names follow the
// GitHub users API so the response body decodes straight into it.
type Account struct {
	AvatarURL       string `json:"avatar_url"`
	Name            string `json:"name"`
	Login           string `json:"login"`
	CreatedAt       string `json:"created_at"`
	Bio             string `json:"bio"`
	PublicRepos     int    `json:"public_repos"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	Location        string `json:"location"`
	Blog            string `json:"blog"`
	TwitterUsername string `json:"twitter_username"`
	Company         string `json:"company"`
}

type Fetcher interface {
	GetAccount(ctx context.Context, username string) (*Account, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, username string) (*Account, error)

func (f FetcherFunc) GetAccount(ctx context.Context, username string) (*Account, error) {
	return f(ctx, username)
}
