package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatJoinedDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"timestamp", "2011-01-25T18:44:36Z", "25 Jan 2011"},
		{"september uses en-GB short month", "2011-09-05T00:00:00Z", "5 Sept 2011"},
		{"taken in UTC", "2019-03-01T01:30:00+02:00", "28 Feb 2019"},
		{"date only", "2011-01-25", "25 Jan 2011"},
		{"date only september", "2020-09-03", "3 Sept 2020"},
		{"empty", "", ""},
		{"malformed", "yesterday", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatJoinedDate(tt.in))
		})
	}
}

func TestAvailability(t *testing.T) {
	for _, dark := range []bool{false, true} {
		f := Availability(dark, "")
		assert.Equal(t, "Not available", f.Text)
		assert.False(t, f.Available)
		assert.Contains(t, f.TextClass, "text-gray-blue/50")
		assert.Contains(t, f.IconClass, "fill-gray-blue/50")
	}

	light := Availability(false, "San Francisco")
	assert.Equal(t, "San Francisco", light.Text)
	assert.True(t, light.Available)
	assert.Equal(t, "text-gray-blue text-sm sm:text-base", light.TextClass)
	assert.Equal(t, "fill-gray-blue h-5 w-5", light.IconClass)

	dark := Availability(true, "San Francisco")
	assert.Equal(t, "San Francisco", dark.Text)
	assert.Equal(t, "text-white text-sm sm:text-base", dark.TextClass)
	assert.Equal(t, "fill-white h-5 w-5", dark.IconClass)
}

func TestPresent(t *testing.T) {
	s := NewState("octocat")
	s.Account = octocat

	card := Present(s)

	assert.Equal(t, "The Octocat", card.Name)
	assert.Equal(t, "octocat", card.Login)
	assert.Equal(t, "Joined 25 Jan 2011", card.Joined)
	assert.Equal(t, "This profile has no bio", card.Bio)
	assert.Equal(t, "The Octocat's profile picture", card.AvatarAlt)
	assert.Equal(t, []Stat{{"Repos", 8}, {"Followers", 9000}, {"Following", 9}}, card.Stats)
	assert.Equal(t, "San Francisco", card.Location.Text)
	assert.Equal(t, "https://github.blog", card.Website.Text)
	assert.Equal(t, "Not available", card.Twitter.Text)
	assert.Equal(t, "@github", card.Company.Text)
	assert.Equal(t, "DARK", card.ToggleLabel)
}

func TestPresent_ThemeChangesOnlyStyles(t *testing.T) {
	s := NewState("octocat")
	s.Account = octocat
	light := Present(s)

	s.DarkMode = true
	dark := Present(s)

	assert.Equal(t, "LIGHT", dark.ToggleLabel)
	assert.NotEqual(t, light.Classes, dark.Classes)
	assert.NotEqual(t, light.Location.IconClass, dark.Location.IconClass)
	assert.Equal(t, light.Twitter.IconClass, dark.Twitter.IconClass, "missing fields stay muted in both themes")

	for _, pair := range [][2]Field{
		{light.Location, dark.Location},
		{light.Website, dark.Website},
		{light.Twitter, dark.Twitter},
		{light.Company, dark.Company},
	} {
		assert.Equal(t, pair[0].Text, pair[1].Text)
		assert.Equal(t, pair[0].Available, pair[1].Available)
	}
	assert.Equal(t, light.Name, dark.Name)
	assert.Equal(t, light.Stats, dark.Stats)
	assert.Equal(t, light.Joined, dark.Joined)
	assert.Equal(t, light.Bio, dark.Bio)
}

func TestPresent_EmptyAccount(t *testing.T) {
	card := Present(NewState(""))

	assert.Empty(t, card.Joined)
	assert.Equal(t, "This profile has no bio", card.Bio)
	assert.Equal(t, "octocat", card.SearchText)
}
