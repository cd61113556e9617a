package openai

import (
	"errors"

	"github.com/openai/openai-go"
	ai "github.com/swingAnt/mcpchat"
)

// wrapError converts an OpenAI SDK error into a categorized
// ai.ChatAPIError. Transport failures without an HTTP status are treated as
// transient.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &ai.ChatAPIError{
			Msg: "openai request failed",
			Cat: ai.ErrorTransient,
			Err: err,
		}
	}

	return ai.NewChatAPIError("openai api error", apiErr.StatusCode, err)
}
