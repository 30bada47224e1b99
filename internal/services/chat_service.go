package services

import (
	"context"
	"fmt"
	"strings"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/ai"
	"fleetpulse/pkg/logger"
)

type ChatService interface {
	// StreamChat answers a fleet question over the live fleet snapshot,
	// delivering the assistant reply incrementally through onChunk.
	StreamChat(ctx context.Context, request *validators.ChatRequest, onChunk func(delta string) error) error
}

type aiClient interface {
	Configured() bool
	StreamChat(ctx context.Context, messages []ai.Message, onChunk func(delta string) error) error
}

type chatService struct {
	ai         aiClient
	driverRepo interfaces.DriverRepository
	logger     *logger.Logger
}

func NewChatService(client aiClient, driverRepo interfaces.DriverRepository, logger *logger.Logger) ChatService {
	return &chatService{
		ai:         client,
		driverRepo: driverRepo,
		logger:     logger,
	}
}

func (s *chatService) StreamChat(ctx context.Context, request *validators.ChatRequest, onChunk func(delta string) error) error {
	if !s.ai.Configured() {
		return ai.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, utils.ChatStreamTimeout)
	defer cancel()

	system, err := s.buildSystemPrompt(ctx)
	if err != nil {
		return err
	}

	messages := make([]ai.Message, 0, len(request.Messages)+1)
	messages = append(messages, ai.Message{Role: "system", Content: system})
	for _, m := range request.Messages {
		if m.Role == "system" {
			// Client-supplied system prompts are dropped; the fleet
			// context is authoritative.
			continue
		}
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}

	return s.ai.StreamChat(ctx, messages, onChunk)
}

// buildSystemPrompt snapshots the fleet into a compact context block the
// model answers from.
func (s *chatService) buildSystemPrompt(ctx context.Context) (string, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load fleet for chat context: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a fleet operations assistant. Answer questions using only the fleet data below. ")
	b.WriteString("If the data cannot answer a question, say so instead of guessing.\n\n")
	b.WriteString(fmt.Sprintf("Fleet size: %d drivers\n\n", len(drivers)))

	for _, d := range drivers {
		b.WriteString(formatDriverContext(d))
	}

	return b.String(), nil
}

func formatDriverContext(d *models.Driver) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("- %s (status: %s): ", d.FullName(), d.Status))
	b.WriteString(fmt.Sprintf("acceptance %.0f%%, cancellation %.0f%%, completion %.0f%%, ",
		d.AcceptanceRate*100, d.CancellationRate*100, d.CompletionRate*100))
	b.WriteString(fmt.Sprintf("feedback %.1f/5, %d trips, %.2f %s earned",
		d.FeedbackScore, d.TotalTrips, d.TotalEarnings, d.Currency))
	if d.LastActivityAt != nil {
		b.WriteString(fmt.Sprintf(", last active %s", d.LastActivityAt.Format("2006-01-02")))
	}
	b.WriteString("\n")
	return b.String()
}
