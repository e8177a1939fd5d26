package summary

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/store"
)

// scripted returns a different canned reply per call.
type scripted struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *scripted) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", nil
}

func (f *scripted) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

func newTestSummarizer(p llm.LLMProvider) *Summarizer {
	return NewSummarizer(p, "gemma3_input", log.New(io.Discard, "", 0))
}

func TestRefreshUpdatesBothCaches(t *testing.T) {
	sess := store.NewSession("s1")
	sess.RecordExchange("quiero aceite", "Tenemos Aceite Girasol Marolio")

	p := &scripted{replies: []string{
		"El cliente busca aceite y se le mostró una opción.",
		"aceite girasol marolio",
	}}
	s := newTestSummarizer(p)
	s.Refresh(context.Background(), sess)

	if !strings.Contains(sess.ConversationSummary, "busca aceite") {
		t.Errorf("summary = %q", sess.ConversationSummary)
	}
	if !strings.Contains(sess.ConversationSummary, "resumen orientativo") {
		t.Errorf("summary missing disclaimer: %q", sess.ConversationSummary)
	}
	if sess.ShortProductSummary != "aceite girasol marolio" {
		t.Errorf("short summary = %q", sess.ShortProductSummary)
	}
}

func TestRefreshNoExchangesIsNoop(t *testing.T) {
	sess := store.NewSession("s1")
	p := &scripted{}
	newTestSummarizer(p).Refresh(context.Background(), sess)

	if p.calls != 0 {
		t.Errorf("expected no model calls, got %d", p.calls)
	}
}

func TestRefreshErrorKeepsPreviousCaches(t *testing.T) {
	sess := store.NewSession("s1")
	sess.RecordExchange("quiero pan", "Tenemos Pan Lactal")
	sess.ConversationSummary = "resumen viejo"
	sess.ShortProductSummary = "pan lactal"

	p := &scripted{errs: []error{errors.New("down"), errors.New("down")}}
	newTestSummarizer(p).Refresh(context.Background(), sess)

	if sess.ConversationSummary != "resumen viejo" {
		t.Errorf("summary overwritten on error: %q", sess.ConversationSummary)
	}
	if sess.ShortProductSummary != "pan lactal" {
		t.Errorf("short summary overwritten on error: %q", sess.ShortProductSummary)
	}
}

func TestRefreshNoneClearsShortSummary(t *testing.T) {
	sess := store.NewSession("s1")
	sess.RecordExchange("hola", "¡Hola! ¿Qué estás buscando?")
	sess.ShortProductSummary = "algo viejo"

	p := &scripted{replies: []string{"Saludo inicial.", "NONE"}}
	newTestSummarizer(p).Refresh(context.Background(), sess)

	if sess.ShortProductSummary != "" {
		t.Errorf("short summary = %q, want cleared", sess.ShortProductSummary)
	}
}

func TestRefreshPromptCarriesCartDisclaimer(t *testing.T) {
	sess := store.NewSession("s1")
	sess.RecordExchange("quiero leche", "Tenemos Leche Entera")

	p := &scripted{replies: []string{"r", "NONE"}}
	newTestSummarizer(p).Refresh(context.Background(), sess)

	if !strings.Contains(p.prompts[0], "NO es la fuente autoritativa") {
		t.Errorf("summarization prompt must state the record is not authoritative:\n%s", p.prompts[0])
	}
}

func TestRefreshTranscriptContainsBothSides(t *testing.T) {
	sess := store.NewSession("s1")
	sess.RecordExchange("quiero leche", "Tenemos Leche Entera")

	p := &scripted{replies: []string{"r", "NONE"}}
	newTestSummarizer(p).Refresh(context.Background(), sess)

	if !strings.Contains(p.prompts[0], "Cliente: quiero leche") ||
		!strings.Contains(p.prompts[0], "Asistente: Tenemos Leche Entera") {
		t.Errorf("transcript incomplete:\n%s", p.prompts[0])
	}
}
