package handlers

import (
	"net/http"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/ui"
)

// pageMessage replaces a page's content when there is nothing to show.
type pageMessage struct {
	Text  string
	Error bool
}

var pageMessages = map[string]map[apperrors.Kind]string{
	ui.PageListing: {
		apperrors.KindStore:      "Error loading plants.",
		apperrors.KindNotFound:   "No plants found.",
		apperrors.KindUnexpected: "Something went wrong while loading plants.",
	},
	ui.PageDetail: {
		apperrors.KindStore:      "Error loading plant.",
		apperrors.KindNotFound:   "Plant not found.",
		apperrors.KindMissingID:  "No plant selected.",
		apperrors.KindUnexpected: "Something went wrong while loading plant.",
	},
}

// messageFor returns the user-facing text for an error kind on a page.
func messageFor(page string, kind apperrors.Kind) string {
	if msg, ok := pageMessages[page][kind]; ok {
		return msg
	}
	return pageMessages[page][apperrors.KindUnexpected]
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindStore:
		return http.StatusBadGateway
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindMissingID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
