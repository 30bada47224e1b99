package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/ai"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// StreamChat answers a fleet question as a server-sent event stream.
// Errors before the first byte use the JSON envelope; once streaming
// has begun they terminate the stream with an error event.
func (h *ChatHandler) StreamChat(c *gin.Context) {
	var request validators.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateChatRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		utils.InternalServerErrorResponse(c)
		return
	}

	started := false
	err := h.chatService.StreamChat(c.Request.Context(), &request, func(delta string) error {
		started = true
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", sseEscape(delta)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		if !started {
			if errors.Is(err, ai.ErrNotConfigured) {
				utils.ServiceUnavailableResponse(c, "AI assistant is not configured")
				return
			}
			utils.ErrorResponse(c, http.StatusBadGateway, "CHAT_FAILED", "Chat completion failed")
			return
		}
		fmt.Fprintf(c.Writer, "event: error\ndata: stream interrupted\n\n")
		flusher.Flush()
		return
	}

	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}

// sseEscape keeps multi-line deltas inside a single SSE data field.
func sseEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, []byte("\ndata: ")...)
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
