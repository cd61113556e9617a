package anthropic

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/swingAnt/mcpchat"
)

// wrapError converts an Anthropic SDK error into a categorized
// ai.ChatAPIError. Transport failures without an HTTP status are treated as
// transient.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return &ai.ChatAPIError{
			Msg: "anthropic request failed",
			Cat: ai.ErrorTransient,
			Err: err,
		}
	}

	return ai.NewChatAPIError("anthropic api error", apiErr.StatusCode, err)
}
