package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/memory"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/catalog"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/intent"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/resolver"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/response"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/summary"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/events"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"

	"github.com/google/uuid"
)

// --- fakes ---

// scriptedProvider replies with queued responses, one per Generate call.
type scriptedProvider struct {
	queue []string
	errs  []error
	calls int
}

func (p *scriptedProvider) push(response string) {
	p.queue = append(p.queue, response)
	p.errs = append(p.errs, nil)
}

func (p *scriptedProvider) pushErr(err error) {
	p.queue = append(p.queue, "")
	p.errs = append(p.errs, err)
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if p.calls >= len(p.queue) {
		return "", errors.New("scripted provider exhausted")
	}
	i := p.calls
	p.calls++
	return p.queue[i], p.errs[i]
}

// erroringProvider always fails, forcing deterministic templates.
type erroringProvider struct{}

func (erroringProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("model unavailable")
}

func (erroringProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("model unavailable")
}

type fakeCatalog struct {
	results map[string][]*entity.Product
	lookups []string
}

func (f *fakeCatalog) Lookup(ctx context.Context, term string, nameOnly bool) ([]*entity.Product, error) {
	f.lookups = append(f.lookups, term)
	if rows, ok := f.results[term]; ok {
		return rows, nil
	}
	return nil, catalog.ErrNotFound
}

type fakeLogRepo struct {
	rows []*entity.ConversationLog
}

func (f *fakeLogRepo) Create(ctx context.Context, row *entity.ConversationLog) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationLog, error) {
	return f.rows, nil
}

func (f *fakeLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}

type fakeTurnPublisher struct {
	payloads [][]byte
}

func (f *fakeTurnPublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeOrderPublisher struct {
	published []events.Event
	err       error
}

func (f *fakeOrderPublisher) Publish(ctx context.Context, event events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- fixture ---

type fixture struct {
	svc         IAssistantService
	detectorLLM *scriptedProvider
	cat         *fakeCatalog
	orders      *fakeOrderPublisher
	turnLog     *fakeTurnPublisher
	sessionRepo *memory.SessionRepository
	cartRepo    *memory.CartRepository
}

func newFixture(cat *fakeCatalog) *fixture {
	discard := log.New(io.Discard, "", 0)
	detectorLLM := &scriptedProvider{}
	orders := &fakeOrderPublisher{}
	turnLog := &fakeTurnPublisher{}
	sessionRepo := memory.NewSessionRepository(time.Hour, 12)
	cartRepo := memory.NewCartRepository(time.Hour)

	svc := NewAssistantService(
		sessionRepo,
		cartRepo,
		&fakeLogRepo{},
		intent.NewDetector(detectorLLM, "gemma3_input", discard),
		resolver.NewResolver(cat, erroringProvider{}, "gemma3_input", discard),
		response.NewSynthesizer(erroringProvider{}, "gemma3_output", "Horario: 9 a 18", discard),
		summary.NewSummarizer(erroringProvider{}, "gemma3_input", discard),
		turnLog,
		orders,
		70,
		nopLogger{},
	)

	return &fixture{
		svc:         svc,
		detectorLLM: detectorLLM,
		cat:         cat,
		orders:      orders,
		turnLog:     turnLog,
		sessionRepo: sessionRepo,
		cartRepo:    cartRepo,
	}
}

func marolio() *entity.Product {
	return &entity.Product{Id: uuid.New(), Name: "Aceite Girasol Marolio", SalePrice: 450, Brand: "Marolio", Category: "Almacén"}
}

func cocinero() *entity.Product {
	return &entity.Product{Id: uuid.New(), Name: "Aceite Oliva Cocinero", SalePrice: 1200, Brand: "Cocinero", Category: "Almacén"}
}

func detection(intentLabel string, confidence int, products string) string {
	return "intención: " + intentLabel + "\nconfianza: " + strconv.Itoa(confidence) + "\nproductos: " + products
}

// --- tests ---

func TestShowOrderOnEmptyCart(t *testing.T) {
	f := newFixture(&fakeCatalog{})
	f.detectorLLM.push(detection("MOSTRAR_PEDIDO", 92, "ninguno"))

	reply, err := f.svc.HandleTurn(context.Background(), "549111", "mostrame el pedido")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if reply != constant.TemplateEmptyOrder {
		t.Errorf("reply = %q", reply)
	}
}

func TestAddProductWithQuantityFromUtterance(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))

	reply, err := f.svc.HandleTurn(context.Background(), "549111", "quiero 2 aceites marolio")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if !strings.Contains(reply, "2 unidad(es) de 'Aceite Girasol Marolio'") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "$900.00") {
		t.Errorf("reply missing running total: %q", reply)
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if cart.Total() != 900 {
		t.Errorf("cart total = %.2f, want 900", cart.Total())
	}
}

func TestDetectorFailureStillAnswers(t *testing.T) {
	f := newFixture(&fakeCatalog{})
	f.detectorLLM.pushErr(errors.New("oracle down"))

	// Unclassified turns answer from conversational context; with the
	// responder also down that degrades to the chit-chat template.
	reply, err := f.svc.HandleTurn(context.Background(), "549111", "quiero algo")
	if err != nil {
		t.Fatalf("HandleTurn must not fail: %v", err)
	}
	if reply != constant.TemplateChitChatFallback {
		t.Errorf("reply = %q", reply)
	}
}

func TestUnclassifiedTurnSkipsCatalog(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite": {marolio()},
	}})
	f.detectorLLM.push(detection("CUALQUIER_COSA", 90, "aceite"))

	f.svc.HandleTurn(context.Background(), "549111", "jaja mirá vos el aceite")
	if len(f.cat.lookups) != 0 {
		t.Errorf("unclassified turn consulted the catalog: %v", f.cat.lookups)
	}
}

func TestLowConfidenceAddAsksConfirmation(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 40, "aceite marolio"))

	reply, _ := f.svc.HandleTurn(context.Background(), "549111", "mmm capaz el aceite marolio?")
	if !strings.Contains(reply, "agregar productos al pedido") {
		t.Errorf("reply = %q, want confirmation question", reply)
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if !cart.IsEmpty() {
		t.Error("a hesitant add must not touch the cart")
	}
	sess, _ := f.sessionRepo.Get("549111")
	if sess.LastValidAction != "" {
		t.Errorf("low confidence must not update last action, got %q", sess.LastValidAction)
	}
}

func TestLowConfidenceRemoveStillExecutes(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	ctx := context.Background()

	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))
	f.svc.HandleTurn(ctx, "549111", "quiero 3 aceites marolio")

	// Only add/show are gated below the threshold.
	f.detectorLLM.push(detection("QUITAR_PRODUCTO", 40, "marolio"))
	reply, _ := f.svc.HandleTurn(ctx, "549111", "sacame uno del marolio")
	if !strings.Contains(reply, "Se quitó") {
		t.Errorf("reply = %q, want removal", reply)
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if cart.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart.Items[0].Quantity)
	}
}

func TestFinalizeLockConsumesNextTurnAsDetails(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	ctx := context.Background()

	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))
	f.svc.HandleTurn(ctx, "549111", "quiero aceite marolio")

	f.detectorLLM.push(detection("FINALIZAR_PEDIDO", 90, "ninguno"))
	reply, _ := f.svc.HandleTurn(ctx, "549111", "cerrá el pedido")
	if !strings.Contains(reply, "nombre, dirección") {
		t.Fatalf("finalize should ask for details, got %q", reply)
	}

	// The next utterance is delivery details even though it reads like a
	// clear-cart command. The detector must not even be consulted.
	reply, _ = f.svc.HandleTurn(ctx, "549111", "Juan Pérez, Av. Rivadavia 1234, vaciá todo")
	if reply != constant.TemplateOrderConfirmed {
		t.Fatalf("reply = %q, want order confirmation", reply)
	}
	if len(f.orders.published) != 1 {
		t.Fatalf("published %d order events, want 1", len(f.orders.published))
	}

	payload := f.orders.published[0].Payload()
	if payload["customer_details"] != "Juan Pérez, Av. Rivadavia 1234, vaciá todo" {
		t.Errorf("customer_details = %v", payload["customer_details"])
	}
	if payload["total"] != 450.0 {
		t.Errorf("total = %v, want 450", payload["total"])
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if !cart.IsEmpty() {
		t.Error("cart should be cleared after successful handoff")
	}
}

func TestFinalizeEmptyCart(t *testing.T) {
	f := newFixture(&fakeCatalog{})
	f.detectorLLM.push(detection("FINALIZAR_PEDIDO", 90, "ninguno"))

	reply, _ := f.svc.HandleTurn(context.Background(), "549111", "cerrá el pedido")
	if reply != constant.TemplateFinalizeEmptyOrder {
		t.Errorf("reply = %q", reply)
	}

	sess, _ := f.sessionRepo.Get("549111")
	if sess.AwaitingCustomerDetails {
		t.Error("empty cart must not arm the finalize lock")
	}
}

func TestPublishFailureKeepsCartAndLock(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	f.orders.err = errors.New("nats down")
	ctx := context.Background()

	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))
	f.svc.HandleTurn(ctx, "549111", "quiero aceite marolio")
	f.detectorLLM.push(detection("FINALIZAR_PEDIDO", 90, "ninguno"))
	f.svc.HandleTurn(ctx, "549111", "cerrá el pedido")

	reply, _ := f.svc.HandleTurn(ctx, "549111", "Juan Pérez, Av. Rivadavia 1234")
	if reply != constant.TemplateOrderConfirmRetry {
		t.Fatalf("reply = %q", reply)
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if cart.IsEmpty() {
		t.Error("cart must survive a failed handoff")
	}
	sess, _ := f.sessionRepo.Get("549111")
	if !sess.AwaitingCustomerDetails {
		t.Error("finalize lock must stay armed after a failed handoff")
	}
}

func TestClearCartKeepsShownCache(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	ctx := context.Background()

	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))
	f.svc.HandleTurn(ctx, "549111", "quiero aceite marolio")

	f.detectorLLM.push(detection("VACIAR_PEDIDO", 95, "ninguno"))
	reply, _ := f.svc.HandleTurn(ctx, "549111", "vaciá el pedido")
	if reply != constant.TemplateOrderCleared {
		t.Fatalf("reply = %q", reply)
	}

	sess, _ := f.sessionRepo.Get("549111")
	if len(sess.FocalProducts) != 0 {
		t.Errorf("focal products should reset, got %v", sess.FocalProducts)
	}
	if sess.FindShown("marolio") == nil {
		t.Error("shown-products cache must survive a cart clear")
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if !cart.IsEmpty() {
		t.Error("cart should be empty")
	}
}

func TestVagueMentionResolvesFromCacheWithoutCatalog(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite": {marolio(), cocinero()},
	}})
	ctx := context.Background()

	// First turn shows both oils and caches them.
	f.detectorLLM.push(detection("CONSULTAR_INFO", 88, "aceite"))
	reply, _ := f.svc.HandleTurn(ctx, "549111", "qué aceites tenés?")
	if !strings.Contains(reply, "Aceite Girasol Marolio") || !strings.Contains(reply, "Aceite Oliva Cocinero") {
		t.Fatalf("reply = %q, want both oils listed", reply)
	}

	lookupsBefore := len(f.cat.lookups)

	// "el marolio" must hit the shown-products cache, not the catalog.
	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 93, "marolio"))
	reply, _ = f.svc.HandleTurn(ctx, "549111", "dame el marolio")
	if !strings.Contains(reply, "Aceite Girasol Marolio") {
		t.Fatalf("reply = %q", reply)
	}
	if len(f.cat.lookups) != lookupsBefore {
		t.Errorf("catalog consulted for cached mention: %v", f.cat.lookups[lookupsBefore:])
	}
}

func TestAmbiguousAddAsksForClarification(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite": {marolio(), cocinero()},
	}})
	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 90, "aceite"))

	reply, _ := f.svc.HandleTurn(context.Background(), "549111", "agregá aceite")
	if !strings.Contains(reply, "varias opciones") {
		t.Errorf("reply = %q, want clarification", reply)
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if !cart.IsEmpty() {
		t.Error("ambiguous mention must not add anything")
	}
}

func TestRemoveProductFromCart(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	ctx := context.Background()

	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))
	f.svc.HandleTurn(ctx, "549111", "quiero 3 aceites marolio")

	f.detectorLLM.push(detection("QUITAR_PRODUCTO", 90, "marolio"))
	reply, _ := f.svc.HandleTurn(ctx, "549111", "sacame 1 marolio")
	if !strings.Contains(reply, "Se quitó 1 unidad(es) de 'Aceite Girasol Marolio'") {
		t.Errorf("reply = %q", reply)
	}

	cart := f.cartRepo.GetOrCreate("549111")
	if cart.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart.Items[0].Quantity)
	}
}

func TestChitChatDoesNotDisturbFocus(t *testing.T) {
	f := newFixture(&fakeCatalog{results: map[string][]*entity.Product{
		"aceite marolio": {marolio()},
	}})
	ctx := context.Background()

	f.detectorLLM.push(detection("AGREGAR_PRODUCTO", 95, "aceite marolio"))
	f.svc.HandleTurn(ctx, "549111", "quiero aceite marolio")

	f.detectorLLM.push(detection("CHARLA", 85, "ninguno"))
	f.svc.HandleTurn(ctx, "549111", "gracias!")

	sess, _ := f.sessionRepo.Get("549111")
	if len(sess.FocalProducts) != 1 || sess.FocalProducts[0] != "Aceite Girasol Marolio" {
		t.Errorf("focal products = %v", sess.FocalProducts)
	}
	if sess.LastValidAction != constant.IntentAddProduct {
		t.Errorf("last action = %q", sess.LastValidAction)
	}
}

func TestTurnLogPublishedEveryTurn(t *testing.T) {
	f := newFixture(&fakeCatalog{})
	f.detectorLLM.push(detection("MOSTRAR_PEDIDO", 92, "ninguno"))

	f.svc.HandleTurn(context.Background(), "549111", "mostrame el pedido")
	if len(f.turnLog.payloads) != 1 {
		t.Fatalf("turn log payloads = %d, want 1", len(f.turnLog.payloads))
	}
	if !strings.Contains(string(f.turnLog.payloads[0]), "MOSTRAR_PEDIDO") {
		t.Errorf("payload = %s", f.turnLog.payloads[0])
	}
}
