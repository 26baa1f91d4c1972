package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vbalien/textrank/keywords"
	"github.com/vbalien/textrank/tagged"
)

type tokenBody struct {
	Surface string `json:"surface" validate:"required"`
	Tag     string `json:"tag" validate:"required"`
}

type keywordsRequest struct {
	Tokens []tokenBody `json:"tokens" validate:"omitempty,dive"`
	Text   string      `json:"text"`
	Top    *int        `json:"top"`
}

type keywordsResponse struct {
	Message  string             `json:"message,omitempty"`
	Keywords []keywords.Keyword `json:"keywords"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, keywordsResponse{Message: msg})
}

// keywordsHandler ranks either pre-tagged tokens or surface/TAG text.
func (s *Server) keywordsHandler(c echo.Context) error {
	req := new(keywordsRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	hasTokens, hasText := len(req.Tokens) > 0, req.Text != ""
	switch {
	case hasTokens && hasText:
		return badRequest(c, "Set either tokens or text, not both")
	case !hasTokens && !hasText:
		return badRequest(c, "Either tokens or text is required")
	}

	var tokens []keywords.Token
	if hasText {
		parsed, err := tagged.Parse(req.Text)
		if err != nil {
			return badRequest(c, "Invalid tagged text: "+err.Error())
		}
		tokens = parsed
	} else {
		tokens = make([]keywords.Token, len(req.Tokens))
		for i, t := range req.Tokens {
			tokens[i] = keywords.Token{Surface: t.Surface, Tag: t.Tag}
		}
	}

	top := s.topN
	if req.Top != nil {
		top = *req.Top
	}

	kws := s.extractor.Extract(tokens, top)
	if kws == nil {
		kws = []keywords.Keyword{}
	}
	return c.JSON(http.StatusOK, keywordsResponse{Keywords: kws})
}
