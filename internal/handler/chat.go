package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.chatService.Chat())
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req, false) {
		return
	}

	_, err := h.chatService.Send(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, r, err, "failed to send chat message")
		return
	}

	response.JSON(w, http.StatusAccepted, h.chatService.Chat())
}

func (h *ChatHandler) SendImage(w http.ResponseWriter, r *http.Request) {
	data, ok := uploadedImage(w, r)
	if !ok {
		return
	}

	_, err := h.chatService.SendImage(r.Context(), data, r.FormValue("text"))
	if err != nil {
		writeServiceError(w, r, err, "failed to send chat image")
		return
	}

	response.JSON(w, http.StatusAccepted, h.chatService.Chat())
}

func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.chatService.Clear()
	w.WriteHeader(http.StatusNoContent)
}
