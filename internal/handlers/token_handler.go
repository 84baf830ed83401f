package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/httpresp"
	"github.com/parlourbd/parlour-server/internal/token"
)

type TokenHandler struct {
	tokens *token.Service
}

func NewTokenHandler(tokens *token.Service) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue signs the posted identity claims into a session token.
func (h *TokenHandler) Issue(c *gin.Context) {
	var identity map[string]any
	if err := c.ShouldBindJSON(&identity); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	signed, err := h.tokens.Issue(identity)
	if err != nil {
		if errors.Is(err, token.ErrMissingEmail) {
			httperr.BadRequest(c, "missing_email", "identity must include an email")
			return
		}
		httperr.Internal(c, "token_issue_failed", "could not issue token")
		return
	}

	httpresp.OK(c, gin.H{"token": signed})
}
