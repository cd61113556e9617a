package google

import (
	"errors"

	ai "github.com/swingAnt/mcpchat"
	"google.golang.org/genai"
)

// wrapError converts a Google GenAI error into a categorized
// ai.ChatAPIError. Transport failures without an HTTP status are treated as
// transient.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return &ai.ChatAPIError{
			Msg: "google request failed",
			Cat: ai.ErrorTransient,
			Err: err,
		}
	}

	return ai.NewChatAPIError("google api error", apiErr.Code, err)
}
