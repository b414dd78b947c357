// Package prompts holds the text sent to the narrative model, kept apart
// from the services so wording changes don't touch orchestration code.
package prompts

import (
	"fmt"

	"github.com/latefee/latefee/pkg/models"
)

// FilmCriticSystemMessage frames the model as a film critic for every
// narrative request.
const FilmCriticSystemMessage = "You are a film critic who explains the 'Eye of the Duck' scene for movies."

// BuildEyeOfTheDuckPrompt creates the prompt asking for a movie's most
// essential scene.
func BuildEyeOfTheDuckPrompt(movie *models.Movie) string {
	return fmt.Sprintf(
		"In film theory, the 'Eye of the Duck' is the most essential scene "+
			"that reveals the heart or core of a movie. "+
			"For the movie '%s' (directed by %s, %d), "+
			"describe what the 'Eye of the Duck' scene might be and explain why.",
		movie.Name, movie.Director, movie.Year)
}
