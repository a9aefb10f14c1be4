package models

// Game is a catalogue entry derived from the Steam game list.
type Game struct {
	ID          string  `json:"id"`      // "steam_<appid>"
	SteamID     string  `json:"steamId"` // original Steam app id
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"` // currency units, upstream reports cents
	IsSteamGame bool    `json:"isSteamGame"`
}
