package intent

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"testing"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func newTestDetector(p llm.LLMProvider) *Detector {
	return NewDetector(p, "gemma3_input", log.New(io.Discard, "", 0))
}

func TestDetectParsesLabeledLines(t *testing.T) {
	d := newTestDetector(&fakeProvider{response: `intención: AGREGAR_PRODUCTO
confianza: 92
productos: aceite marolio, leche entera`})

	got := d.Detect(context.Background(), "quiero aceite y leche", Hints{})

	if got.Intent != "AGREGAR_PRODUCTO" {
		t.Errorf("intent = %q", got.Intent)
	}
	if got.Confidence != 92 {
		t.Errorf("confidence = %d", got.Confidence)
	}
	want := []string{"aceite marolio", "leche entera"}
	if !reflect.DeepEqual(got.Mentions, want) {
		t.Errorf("mentions = %v, want %v", got.Mentions, want)
	}
}

func TestDetectStripsThinkBlocks(t *testing.T) {
	d := newTestDetector(&fakeProvider{response: `<think>
intención: VACIAR_PEDIDO es una posibilidad...
</think>
intención detectada: MOSTRAR_PEDIDO
confianza: 85
productos: ninguno`})

	got := d.Detect(context.Background(), "mostrame el pedido", Hints{})

	if got.Intent != "MOSTRAR_PEDIDO" {
		t.Errorf("intent = %q, think block leaked into parsing", got.Intent)
	}
	if len(got.Mentions) != 0 {
		t.Errorf("mentions = %v, want none", got.Mentions)
	}
}

func TestDetectSplitsMentionsOnConnectors(t *testing.T) {
	d := newTestDetector(&fakeProvider{response: "intención: AGREGAR_PRODUCTO\nconfianza: 80\nproductos: pan y manteca\nfideos"})

	got := d.Detect(context.Background(), "", Hints{})

	want := []string{"pan", "manteca", "fideos"}
	if !reflect.DeepEqual(got.Mentions, want) {
		t.Errorf("mentions = %v, want %v", got.Mentions, want)
	}
}

func TestDetectFiltersPlaceholders(t *testing.T) {
	d := newTestDetector(&fakeProvider{response: "intención: CHARLA\nconfianza: 75\nproductos: Ninguno"})

	got := d.Detect(context.Background(), "hola!", Hints{})

	if len(got.Mentions) != 0 {
		t.Errorf("mentions = %v, placeholder should be dropped", got.Mentions)
	}
}

func TestDetectProviderErrorDegradesToZeroDetection(t *testing.T) {
	d := newTestDetector(&fakeProvider{err: errors.New("connection refused")})

	got := d.Detect(context.Background(), "quiero pan", Hints{})

	if got.Intent != "" || got.Confidence != 0 || len(got.Mentions) != 0 {
		t.Errorf("expected zero detection, got %+v", got)
	}
}

func TestDetectUnparseableResponse(t *testing.T) {
	d := newTestDetector(&fakeProvider{response: "no tengo idea"})

	got := d.Detect(context.Background(), "quiero pan", Hints{})

	if got.Intent != "" {
		t.Errorf("intent = %q, want empty", got.Intent)
	}
}
