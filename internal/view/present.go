package view

import (
	"fmt"
	"time"

	"github.com/khoahotran/devfinder/pkg/classnames"
)

const (
	NotAvailable = "Not available"
	NoBio        = "This profile has no bio"

	joinedLayout = "2 Jan 2006"
)

// Field is one optional profile attribute ready for display.
type Field struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
	TextClass string `json:"text_class"`
	IconClass string `json:"icon_class"`
}

// Availability renders an optional attribute. Empty values get the muted
// placeholder; the icon fill follows the same decision.
func Availability(dark bool, value string) Field {
	if value == "" {
		return Field{
			Text:      NotAvailable,
			TextClass: "text-sm text-gray-blue/50 sm:text-base",
			IconClass: classnames.Join("fill-gray-blue/50", "h-5 w-5"),
		}
	}
	return Field{
		Text:      value,
		Available: true,
		TextClass: classnames.Join(classnames.If(dark, "text-white", "text-gray-blue"), "text-sm sm:text-base"),
		IconClass: classnames.Join(classnames.If(dark, "fill-white", "fill-gray-blue"), "h-5 w-5"),
	}
}

// FormatJoinedDate turns an ISO-8601 timestamp or a bare date into
// "25 Jan 2011", with en-GB month names ("Sept"). The date is taken in UTC.
// Empty or malformed input gives "".
func FormatJoinedDate(createdAt string) string {
	if createdAt == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		if t, err = time.Parse(time.DateOnly, createdAt); err != nil {
			return ""
		}
	}
	t = t.UTC()
	if t.Month() == time.September {
		return fmt.Sprintf("%d Sept %d", t.Day(), t.Year())
	}
	return t.Format(joinedLayout)
}

type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Classes are the theme dependent style tokens of the page.
type Classes struct {
	Main        string `json:"main"`
	Title       string `json:"title"`
	ToggleGroup string `json:"toggle_group"`
	ToggleIcon  string `json:"toggle_icon"`
	SearchBar   string `json:"search_bar"`
	Input       string `json:"input"`
	Card        string `json:"card"`
	Name        string `json:"name"`
	Joined      string `json:"joined"`
	Bio         string `json:"bio"`
	Stats       string `json:"stats"`
	StatLabel   string `json:"stat_label"`
}

// Card is everything the page template needs.
type Card struct {
	Dark        bool    `json:"dark"`
	ToggleLabel string  `json:"toggle_label"`
	Classes     Classes `json:"classes"`
	SearchText  string  `json:"search_text"`
	ErrorMsg    string  `json:"error_msg"`
	Loading     bool    `json:"loading"`

	AvatarURL string `json:"avatar_url"`
	AvatarAlt string `json:"avatar_alt"`
	Name      string `json:"name"`
	Login     string `json:"login"`
	Joined    string `json:"joined"`
	Bio       string `json:"bio"`
	Stats     []Stat `json:"stats"`

	Location Field `json:"location"`
	Website  Field `json:"website"`
	Twitter  Field `json:"twitter"`
	Company  Field `json:"company"`
}

func Present(s State) Card {
	dark := s.DarkMode
	acc := s.Account

	bio := acc.Bio
	if bio == "" {
		bio = NoBio
	}
	joined := FormatJoinedDate(acc.CreatedAt)
	if joined != "" {
		joined = "Joined " + joined
	}

	return Card{
		Dark:        dark,
		ToggleLabel: classnames.If(dark, "LIGHT", "DARK"),
		Classes:     themeClasses(dark),
		SearchText:  s.SearchText,
		ErrorMsg:    s.ErrorMsg,
		Loading:     s.Loading,

		AvatarURL: acc.AvatarURL,
		AvatarAlt: fmt.Sprintf("%s's profile picture", acc.Name),
		Name:      acc.Name,
		Login:     acc.Login,
		Joined:    joined,
		Bio:       bio,
		Stats: []Stat{
			{Label: "Repos", Value: acc.PublicRepos},
			{Label: "Followers", Value: acc.Followers},
			{Label: "Following", Value: acc.Following},
		},

		Location: Availability(dark, acc.Location),
		Website:  Availability(dark, acc.Blog),
		Twitter:  Availability(dark, acc.TwitterUsername),
		Company:  Availability(dark, acc.Company),
	}
}

func themeClasses(dark bool) Classes {
	return Classes{
		Main:  classnames.Join(classnames.If(dark, "bg-dark-black", "bg-gray-white"), "min-h-screen font-space-mono"),
		Title: classnames.Join(classnames.If(dark, "text-white", "text-black"), "text-2xl font-bold"),
		ToggleGroup: classnames.Join(
			"group flex items-center gap-4",
			classnames.If(dark, "text-white hover:text-gray-blue", "text-light-gray hover:text-dark-black"),
		),
		ToggleIcon: classnames.Join(
			"h-5 w-5",
			classnames.If(dark, "fill-white group-hover:fill-gray-blue", "fill-gray-blue group-hover:fill-dark-black"),
		),
		SearchBar: classnames.Join(
			classnames.If(dark, "bg-dark-gray-blue shadow-dark-black", "bg-white shadow-gray-blue/10"),
			"flex h-16 w-full items-center gap-4 rounded-xl py-2 pl-4 pr-2 shadow-xl sm:pl-8",
		),
		Input: classnames.Join(
			classnames.If(dark, "text-white placeholder:text-white", "text-black placeholder:text-gray-blue"),
			"w-full bg-inherit text-sm focus-visible:outline-none sm:text-lg",
		),
		Card: classnames.Join(
			classnames.If(dark, "bg-dark-gray-blue shadow-dark-black", "bg-white shadow-gray-blue/10"),
			"flex w-full flex-col gap-6 rounded-xl px-4 py-8 shadow-xl sm:px-8",
		),
		Name:      classnames.Join(classnames.If(dark, "text-white", "text-black"), "text-base sm:text-2xl"),
		Joined:    classnames.Join(classnames.If(dark, "text-white", "text-light-gray"), "text-sm sm:text-base"),
		Bio:       classnames.Join(classnames.If(dark, "text-white", "text-light-gray"), "text-sm leading-6 sm:text-base"),
		Stats:     classnames.Join(classnames.If(dark, "bg-dark-black text-white", "bg-gray-white"), "flex justify-between rounded-lg px-8 py-4"),
		StatLabel: classnames.Join(classnames.If(dark, "text-white", "text-gray-blue"), "text-xs sm:text-base"),
	}
}
