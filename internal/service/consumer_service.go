package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/dto"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the turn-log topic and persists each answered
// turn as two conversation rows. Logging rides the bus so a slow insert
// never delays the customer's reply.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logRepo   contract.ConversationLogRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	logRepo contract.ConversationLogRepository,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logRepo:   logRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishTurnLoggedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn log message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	now := time.Now()

	userRow := &entity.ConversationLog{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		Role:      constant.ChatMessageRoleUser,
		Message:   payload.Utterance,
		Intent:    payload.Intent,
		CreatedAt: now,
	}
	if err := cs.logRepo.Create(ctx, userRow); err != nil {
		log.Printf("[ERROR] Failed to persist customer turn for %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	modelRow := &entity.ConversationLog{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		Role:      constant.ChatMessageRoleModel,
		Message:   payload.Reply,
		Intent:    payload.Intent,
		CreatedAt: now,
	}
	if err := cs.logRepo.Create(ctx, modelRow); err != nil {
		log.Printf("[ERROR] Failed to persist assistant turn for %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
