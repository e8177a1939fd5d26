package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/dto"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/pkg/logger"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/contract"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/memory"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/intent"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/order"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/quantity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/resolver"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/response"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/summary"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/events"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/store"
)

// OrderPublisher is the slice of the event bus the service needs.
type OrderPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IAssistantService interface {
	HandleTurn(ctx context.Context, sessionID, utterance string) (string, error)
	GetHistory(ctx context.Context, sessionID string) ([]*dto.ConversationEntryResponse, error)
}

// assistantService is the turn controller: one customer message in, one
// reply out, with all conversation state updated under the session lock.
// Every failure path still produces a reply; the customer is never left
// hanging on an internal error.
type assistantService struct {
	sessionRepo *memory.SessionRepository
	cartRepo    *memory.CartRepository
	logRepo     contract.ConversationLogRepository

	detector    *intent.Detector
	resolver    *resolver.Resolver
	synthesizer *response.Synthesizer
	summarizer  *summary.Summarizer

	publisherService    IPublisherService
	orderPublisher      OrderPublisher
	confidenceThreshold int
	appLogger           logger.ILogger
}

func NewAssistantService(
	sessionRepo *memory.SessionRepository,
	cartRepo *memory.CartRepository,
	logRepo contract.ConversationLogRepository,
	detector *intent.Detector,
	productResolver *resolver.Resolver,
	synthesizer *response.Synthesizer,
	summarizer *summary.Summarizer,
	publisherService IPublisherService,
	orderPublisher OrderPublisher,
	confidenceThreshold int,
	appLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessionRepo:         sessionRepo,
		cartRepo:            cartRepo,
		logRepo:             logRepo,
		detector:            detector,
		resolver:            productResolver,
		synthesizer:         synthesizer,
		summarizer:          summarizer,
		publisherService:    publisherService,
		orderPublisher:      orderPublisher,
		confidenceThreshold: confidenceThreshold,
		appLogger:           appLogger,
	}
}

func (s *assistantService) HandleTurn(ctx context.Context, sessionID, utterance string) (string, error) {
	sess := s.sessionRepo.GetOrCreate(sessionID)

	// One turn at a time per session. Concurrent webhook deliveries for
	// the same customer queue up here instead of racing on the cart.
	sess.Lock()
	defer sess.Unlock()

	cart := s.cartRepo.GetOrCreate(sessionID)

	var reply string
	var turnIntent string

	// A finalized order is waiting for delivery details: whatever the
	// customer says next IS the details, no detection involved.
	if sess.AwaitingCustomerDetails {
		turnIntent = constant.IntentFinalizeOrder
		reply = s.completeFinalize(ctx, sess, cart, utterance)
	} else {
		det := s.detector.Detect(ctx, utterance, intent.Hints{
			FocalProducts:   sess.FocalProducts,
			LastValidAction: sess.LastValidAction,
			ShownNames:      sess.ShownNames(),
			Summary:         sess.ConversationSummary,
			ShortSummary:    sess.ShortProductSummary,
		})
		turnIntent = det.Intent
		reply = s.dispatch(ctx, sess, cart, utterance, det)
	}

	s.finishTurn(ctx, sess, cart, utterance, reply, turnIntent)
	return reply, nil
}

// dispatch routes a detected intent to its handler, applying the
// stabilization rules: only confident actionable intents update
// LastValidAction, everything else leaves the conversation anchors
// untouched.
func (s *assistantService) dispatch(ctx context.Context, sess *store.Session, cart *order.Cart, utterance string, det *intent.Detection) string {
	if constant.ActionableIntents[det.Intent] {
		// Below the threshold, add/show ask instead of executing. The
		// other actions run as detected.
		if constant.ConfirmGatedIntents[det.Intent] && det.Confidence < s.confidenceThreshold {
			return s.synthesizer.ConfirmIntent(ctx, constant.IntentDescriptions[det.Intent])
		}
		sess.LastValidAction = det.Intent
	}

	switch det.Intent {
	case constant.IntentAddProduct:
		return s.handleAdd(ctx, sess, cart, utterance, det.Mentions)
	case constant.IntentRemoveProduct:
		return s.handleRemove(ctx, sess, cart, utterance, det.Mentions)
	case constant.IntentShowOrder:
		return cart.Render()
	case constant.IntentClearOrder:
		return s.handleClear(sess, cart)
	case constant.IntentFinalizeOrder:
		return s.handleFinalize(sess, cart)
	case constant.IntentConsultInfo:
		return s.handleInfo(ctx, sess, utterance, det.Mentions)
	case constant.IntentChitChat:
		return s.synthesizer.ChitChat(ctx, utterance, sess.ConversationSummary)
	}

	// Unclassified turn: answer from conversational context alone. No
	// catalog access, small talk stays cheap.
	return s.synthesizer.ChitChat(ctx, utterance, sess.ConversationSummary)
}

func (s *assistantService) handleAdd(ctx context.Context, sess *store.Session, cart *order.Cart, utterance string, mentions []string) string {
	if len(mentions) == 0 {
		// "dame dos" after talking about a product: fall back to focus.
		mentions = sess.FocalProducts
	}
	if len(mentions) == 0 {
		return constant.TemplateDidNotUnderstand
	}

	var parts []string
	var added []string
	var confirmations []string

	for _, mention := range mentions {
		res, err := s.resolver.ResolveMention(ctx, sess, mention)
		if err != nil {
			s.appLogger.Error("assistant", "Mention resolution failed", map[string]interface{}{
				"session": sess.ID, "mention": mention, "error": err.Error(),
			})
			parts = append(parts, s.synthesizer.NotAvailable(ctx, mention))
			continue
		}

		switch {
		case res.Product != nil:
			qty := quantity.Parse(mention)
			if qty == 1 && len(mentions) == 1 {
				qty = quantity.Parse(utterance)
			}
			cart.Add(res.Product.Name, qty, res.Product.SalePrice)
			added = append(added, res.Product.Name)
			confirmations = append(confirmations,
				fmt.Sprintf(constant.TemplateAddedToOrder, qty, res.Product.Name, cart.Total()))
		case len(res.Candidates) > 0:
			parts = append(parts, s.synthesizer.Clarify(ctx, mention, res.Candidates))
		case len(res.Ingredients) > 0:
			parts = append(parts, s.synthesizer.IngredientSuggestion(res.Dish, res.Ingredients))
		default:
			parts = append(parts, s.synthesizer.NotAvailable(ctx, mention))
		}
	}

	if len(added) > 0 {
		sess.FocalProducts = added
		confirmation := strings.Join(confirmations, "\n")
		parts = append([]string{s.synthesizer.ConfirmAdd(ctx, confirmation)}, parts...)
	}
	return strings.Join(parts, "\n\n")
}

func (s *assistantService) handleRemove(ctx context.Context, sess *store.Session, cart *order.Cart, utterance string, mentions []string) string {
	if len(mentions) == 0 {
		mentions = sess.FocalProducts
	}
	if len(mentions) == 0 {
		return constant.TemplateDidNotUnderstand
	}

	var parts []string
	for _, mention := range mentions {
		name := mention
		// Prefer the exact name we showed or added earlier.
		if p := sess.FindShown(mention); p != nil {
			name = p.Name
		}

		qty := quantity.Parse(mention)
		if qty == 1 && len(mentions) == 1 {
			qty = quantity.Parse(utterance)
		}

		if cart.Remove(name, qty) {
			parts = append(parts, fmt.Sprintf(constant.TemplateRemovedFromOrder, qty, name))
		} else {
			parts = append(parts, fmt.Sprintf(constant.TemplateNotInOrder, name))
		}
	}
	return strings.Join(parts, "\n")
}

// handleClear empties the cart but keeps the shown-products cache: the
// customer starting over can still say "el marolio de antes".
func (s *assistantService) handleClear(sess *store.Session, cart *order.Cart) string {
	cart.Clear()
	sess.FocalProducts = nil
	return constant.TemplateOrderCleared
}

func (s *assistantService) handleFinalize(sess *store.Session, cart *order.Cart) string {
	if cart.IsEmpty() {
		return constant.TemplateFinalizeEmptyOrder
	}
	sess.AwaitingCustomerDetails = true
	return fmt.Sprintf(constant.TemplateFinalizeAskDetails, cart.RenderLines(), cart.Total())
}

// completeFinalize hands the order to fulfillment. The cart is cleared
// only after the publish succeeded; on failure the order survives and
// the customer is asked to confirm again.
func (s *assistantService) completeFinalize(ctx context.Context, sess *store.Session, cart *order.Cart, details string) string {
	lines := make([]events.OrderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, events.OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	evt := events.NewOrderPlaced(sess.ID, strings.TrimSpace(details), lines, cart.Total())
	if err := s.orderPublisher.Publish(ctx, evt); err != nil {
		s.appLogger.Error("assistant", "Order publish failed, keeping cart", map[string]interface{}{
			"session": sess.ID, "error": err.Error(),
		})
		return constant.TemplateOrderConfirmRetry
	}

	cart.Clear()
	sess.AwaitingCustomerDetails = false
	sess.FocalProducts = nil
	sess.LastValidAction = constant.IntentFinalizeOrder
	return constant.TemplateOrderConfirmed
}

func (s *assistantService) handleInfo(ctx context.Context, sess *store.Session, utterance string, mentions []string) string {
	if len(mentions) == 0 {
		return s.synthesizer.StoreInfo(ctx, utterance)
	}

	var parts []string
	for _, mention := range mentions {
		res, err := s.resolver.ResolveMention(ctx, sess, mention)
		if err != nil {
			s.appLogger.Error("assistant", "Mention resolution failed", map[string]interface{}{
				"session": sess.ID, "mention": mention, "error": err.Error(),
			})
			parts = append(parts, s.synthesizer.NotAvailable(ctx, mention))
			continue
		}

		switch {
		case res.Product != nil:
			// A consult only retargets focus when it resolved cleanly.
			sess.FocalProducts = []string{res.Product.Name}
			parts = append(parts, s.synthesizer.ProductList([]*entity.Product{res.Product}))
		case len(res.Candidates) > 0:
			parts = append(parts, s.synthesizer.ProductList(res.Candidates))
		case len(res.Ingredients) > 0:
			parts = append(parts, s.synthesizer.IngredientSuggestion(res.Dish, res.Ingredients))
		default:
			parts = append(parts, s.synthesizer.NotAvailable(ctx, mention))
		}
	}
	return strings.Join(parts, "\n\n")
}

// finishTurn records the exchange, refreshes the derived summaries and
// ships the turn to the log consumer. None of it can fail the reply.
func (s *assistantService) finishTurn(ctx context.Context, sess *store.Session, cart *order.Cart, utterance, reply, turnIntent string) {
	sess.RecordExchange(utterance, reply)
	s.summarizer.Refresh(ctx, sess)
	s.sessionRepo.Save(sess)
	s.cartRepo.Save(cart)

	payload, err := json.Marshal(dto.PublishTurnLoggedMessage{
		SessionId: sess.ID,
		Utterance: utterance,
		Reply:     reply,
		Intent:    turnIntent,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.appLogger.Warn("assistant", "Turn log publish failed", map[string]interface{}{
			"session": sess.ID, "error": err.Error(),
		})
	}
}

func (s *assistantService) GetHistory(ctx context.Context, sessionID string) ([]*dto.ConversationEntryResponse, error) {
	rows, err := s.logRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationEntryResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, &dto.ConversationEntryResponse{
			Id:        row.Id,
			Role:      row.Role,
			Message:   row.Message,
			Intent:    row.Intent,
			CreatedAt: row.CreatedAt,
		})
	}
	return res, nil
}

// InitLLMLogger builds the isolated file logger shared by the domain
// components that talk to the models.
func InitLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_assistant.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
