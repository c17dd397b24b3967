package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nzoschke/healthmate/internal/ai"
	"github.com/nzoschke/healthmate/internal/flow"
	"github.com/nzoschke/healthmate/internal/markdown"
	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/validation"
)

const unreadableImageReply = "Sorry, I couldn't read that image. Please send a JPEG, PNG or WebP photo and try again."

// Chat is the transcript plus the state of the latest turn.
type Chat struct {
	Messages []model.ChatMessage          `json:"messages"`
	Turn     flow.State[model.ChatMessage] `json:"turn"`
}

// ChatService keeps one conversation. A turn is added to the transcript only
// when it succeeds; failed turns leave it as it was.
type ChatService struct {
	gateway     ai.Gateway
	parser      *markdown.Parser
	session     *ai.Session
	temperature float64
	now         func() time.Time

	turn *flow.Flow[model.ChatMessage]
}

func NewChatService(gateway ai.Gateway, parser *markdown.Parser, temperature float64) *ChatService {
	return &ChatService{
		gateway:     gateway,
		parser:      parser,
		session:     ai.NewSession(),
		temperature: temperature,
		now:         time.Now,
		turn:        flow.New[model.ChatMessage](),
	}
}

func (s *ChatService) Chat() Chat {
	return Chat{
		Messages: s.session.Messages(),
		Turn:     s.turn.State(),
	}
}

// Send starts a text turn.
func (s *ChatService) Send(ctx context.Context, text string) (<-chan struct{}, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text is required")
	}
	err := validation.ValidateText("text", text, 4000)
	if err != nil {
		return nil, asInvalid(err)
	}

	return s.start(ctx, text, nil), nil
}

// SendImage starts an image turn. Image bytes that cannot be decoded are
// answered with an explanation instead of a gateway call.
func (s *ChatService) SendImage(ctx context.Context, data []byte, text string) (<-chan struct{}, error) {
	text = strings.TrimSpace(text)
	err := validation.ValidateText("text", text, 4000)
	if err != nil {
		return nil, asInvalid(err)
	}

	mimeType, err := validation.DetectImage(data, validation.ImageConstraints)
	if err != nil {
		s.turn.Succeed(s.message(model.ChatRoleModel, unreadableImageReply, false))
		return closedChan(), nil
	}

	return s.start(ctx, text, &ai.Image{MIMEType: mimeType, Data: data}), nil
}

// Clear empties the transcript and drops any in-flight turn.
func (s *ChatService) Clear() {
	// Reset first so a turn finishing now cannot append to the cleared transcript.
	s.turn.Reset()
	s.session.Clear()
}

func (s *ChatService) start(ctx context.Context, text string, image *ai.Image) <-chan struct{} {
	req := ai.ChatRequest(s.session.History(), text, image, s.temperature)
	user := s.message(model.ChatRoleUser, req.Prompt, image != nil)

	return s.turn.StartWith(ctx, func(ctx context.Context) (model.ChatMessage, error) {
		reply, err := s.gateway.Generate(ctx, req)
		if err != nil {
			return model.ChatMessage{}, err
		}
		return s.message(model.ChatRoleModel, reply, false), nil
	}, func(reply model.ChatMessage) {
		s.session.Append(user, reply)
	})
}

func (s *ChatService) message(role, text string, hasImage bool) model.ChatMessage {
	m := model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		HasImage:  hasImage,
		CreatedAt: s.now(),
	}
	if role == model.ChatRoleModel {
		m.HTML = s.parser.Render(text)
	}
	return m
}
