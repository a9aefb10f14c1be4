package catalog

import (
	"fmt"
	"strings"

	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
)

const steamPlatform = "PC (Steam)"

// transform maps upstream entries into catalogue games. The "steam_" id
// prefix keeps Steam entries from colliding with locally curated ones.
func transform(raw []SteamGame) []models.Game {
	games := make([]models.Game, 0, len(raw))
	for _, g := range raw {
		image := g.Image
		if image == "" {
			image = "https://placehold.co/300x200?text=Steam+Game"
		}
		games = append(games, models.Game{
			ID:          "steam_" + g.ID.String(),
			SteamID:     g.ID.String(),
			Title:       g.Name,
			Platform:    steamPlatform,
			Genre:       genreForTitle(g.Name),
			Description: fmt.Sprintf("%s - available on Steam", g.Name),
			Rating:      ratingForTitle(g.Name),
			ImageURL:    image,
			Price:       g.Price / 100,
			IsSteamGame: true,
		})
	}
	return games
}

// genreForTitle guesses a genre from the title. Pure heuristic; the
// upstream list carries no genre metadata.
func genreForTitle(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "cyberpunk") || strings.Contains(t, "sci-fi"):
		return "RPG, Action, Open World, Sci-Fi"
	case strings.Contains(t, "ring") || strings.Contains(t, "souls") || strings.Contains(t, "rpg"):
		return "RPG, Action, Open World"
	case strings.Contains(t, "knight") || strings.Contains(t, "hollow"):
		return "Metroidvania, Action, Adventure, Indie"
	case strings.Contains(t, "war") || strings.Contains(t, "god"):
		return "Action, Adventure"
	case strings.Contains(t, "gate") || strings.Contains(t, "baldur"):
		return "RPG, Strategy, Fantasy"
	case strings.Contains(t, "witcher"):
		return "RPG, Action, Open World"
	case strings.Contains(t, "hades"):
		return "Roguelike, Action, Indie"
	}
	return "Action, Adventure"
}

// ratingForTitle assigns a rating to well-known titles, 8.0 otherwise.
func ratingForTitle(title string) float64 {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "elden ring") || strings.Contains(t, "baldur"):
		return 9.6
	case strings.Contains(t, "witcher") || strings.Contains(t, "hades"):
		return 9.5
	case strings.Contains(t, "god of war") || strings.Contains(t, "hollow knight"):
		return 9.4
	case strings.Contains(t, "cyberpunk"):
		return 8.5
	}
	return 8.0
}

// fallbackGames is served when the upstream stays unreachable after all
// retries, so the site still renders something.
func fallbackGames() []models.Game {
	return []models.Game{
		{
			ID:          "steam_fallback_1",
			SteamID:     "offline_1",
			Title:       "Steam data unavailable",
			Platform:    steamPlatform,
			Genre:       "Info",
			Description: "The Steam connection is temporarily unavailable. Try again later.",
			Rating:      0,
			ImageURL:    "https://placehold.co/300x200?text=Steam+Offline",
			Price:       0,
			IsSteamGame: true,
		},
	}
}
