package http

import (
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
)

// EngagementHandler receives the non-commerce interactions the site tracks:
// form submissions, outbound links, downloads, CTA clicks, scroll depth,
// and training-scenario completions. It validates the payload and forwards
// it to the sink; there is nothing else to do server side.
type EngagementHandler struct {
	sink     analytics.EventSink
	validate *validator.Validate
}

func NewEngagementHandler(sink analytics.EventSink) *EngagementHandler {
	return &EngagementHandler{
		sink:     sink,
		validate: validator.New(),
	}
}

type NewsletterRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ContactRequestDTO struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject" validate:"required"`
	Newsletter bool   `json:"newsletter"`
}

type OutboundRequestDTO struct {
	LinkURL  string `json:"link_url" validate:"required,url"`
	LinkText string `json:"link_text"`
}

type DownloadRequestDTO struct {
	FileName string `json:"file_name" validate:"required"`
	LinkURL  string `json:"link_url" validate:"omitempty,url"`
}

type CTARequestDTO struct {
	ButtonID       string `json:"button_id"`
	CardType       string `json:"card_type"`
	ButtonText     string `json:"button_text" validate:"required"`
	ButtonLocation string `json:"button_location"`
}

type ScrollRequestDTO struct {
	Depth    int    `json:"depth" validate:"required,oneof=25 50 75 90"`
	PagePath string `json:"page_path" validate:"required"`
}

type ScenarioRequestDTO struct {
	Scenario string `json:"scenario" validate:"required"`
}

func (h *EngagementHandler) Newsletter(w http.ResponseWriter, r *http.Request) {
	var req NewsletterRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.NewsletterSignup(r.Context(), analytics.NewsletterSignup{Email: req.Email})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.ContactFormSubmitted(r.Context(), analytics.ContactFormSubmitted{
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Newsletter: req.Newsletter,
	})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) Outbound(w http.ResponseWriter, r *http.Request) {
	var req OutboundRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.OutboundLinkClicked(r.Context(), analytics.OutboundLinkClicked{
		LinkURL:  req.LinkURL,
		LinkText: req.LinkText,
	})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.FileDownloaded(r.Context(), analytics.FileDownloaded{
		FileName:      req.FileName,
		FileExtension: strings.TrimPrefix(path.Ext(req.FileName), "."),
		LinkURL:       req.LinkURL,
	})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) CTA(w http.ResponseWriter, r *http.Request) {
	var req CTARequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.CTAClicked(r.Context(), analytics.CTAClicked{
		ButtonID:       req.ButtonID,
		CardType:       req.CardType,
		ButtonText:     req.ButtonText,
		ButtonLocation: req.ButtonLocation,
	})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req ScrollRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.ScrollDepthReached(r.Context(), analytics.ScrollDepthReached{
		Depth:    req.Depth,
		PagePath: req.PagePath,
	})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) Scenario(w http.ResponseWriter, r *http.Request) {
	var req ScenarioRequestDTO
	if !h.decode(w, r, &req) {
		return
	}
	h.sink.ScenarioCompleted(r.Context(), analytics.ScenarioCompleted{Scenario: req.Scenario})
	respondJSON(w, http.StatusAccepted, nil)
}

func (h *EngagementHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", err.Error())
		return false
	}
	return true
}
