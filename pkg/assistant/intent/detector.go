package intent

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
)

// Detection is what the detector model saw in one utterance. A zero
// Detection (empty intent, zero confidence) means the model gave us
// nothing usable; the caller decides what to do with the turn.
type Detection struct {
	Intent     string
	Confidence int
	Mentions   []string
}

// Hints is the session context fed into the prompt so the model can
// disambiguate vague turns ("dame dos de esos").
type Hints struct {
	FocalProducts   []string
	LastValidAction string
	ShownNames      []string
	Summary         string
	ShortSummary    string
}

// Detector wraps the extraction model. It never propagates LLM errors:
// a failed call degrades to a zero Detection and the conversation
// continues.
type Detector struct {
	llmProvider llm.LLMProvider
	model       string
	logger      *log.Logger
}

func NewDetector(llmProvider llm.LLMProvider, model string, logger *log.Logger) *Detector {
	return &Detector{
		llmProvider: llmProvider,
		model:       model,
		logger:      logger,
	}
}

func (d *Detector) Detect(ctx context.Context, utterance string, hints Hints) *Detection {
	prompt := fmt.Sprintf(constant.DetectorPrompt, d.renderHints(hints), utterance)

	response, err := d.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithModel(d.model),
	)
	if err != nil {
		d.logger.Printf("[ERROR] Intent detection failed: %v", err)
		return &Detection{}
	}

	detection := parseDetection(response)
	d.logger.Printf("[INTENT] Detected: %s (Confidence: %d, Mentions: %v)",
		detection.Intent, detection.Confidence, detection.Mentions)

	return detection
}

func (d *Detector) renderHints(hints Hints) string {
	var b strings.Builder

	if len(hints.FocalProducts) > 0 {
		b.WriteString("Producto(s) de los que se venía hablando: ")
		b.WriteString(strings.Join(hints.FocalProducts, ", "))
		b.WriteString("\n")
	}
	if hints.LastValidAction != "" {
		b.WriteString("Última acción del cliente: " + hints.LastValidAction + "\n")
	}
	if hints.ShortSummary != "" {
		b.WriteString("Productos que le interesan: " + hints.ShortSummary + "\n")
	}
	if len(hints.ShownNames) > 0 {
		b.WriteString("Productos ya mostrados: " + strings.Join(hints.ShownNames, ", ") + "\n")
	}
	if hints.Summary != "" {
		b.WriteString("Resumen de la conversación: " + hints.Summary + "\n")
	}
	if b.Len() == 0 {
		return "(sin contexto previo)"
	}
	return b.String()
}

var (
	thinkRe   = regexp.MustCompile(`(?is)<think>.*?</think>`)
	intentRe  = regexp.MustCompile(`(?i)intenci[oó]n\s*(detectada|:)?\s*[:\-]?\s*([A-Z_]+)`)
	confRe    = regexp.MustCompile(`(?i)confianza\s*[:\-]?\s*(\d+)`)
	prodRe    = regexp.MustCompile(`(?is)productos\s*(mencionados|:)?\s*[:\-]?\s*(.*)`)
	prodSplit = regexp.MustCompile(`,|\s+y\s+|\n`)
)

// parseDetection reads the labeled lines out of a loosely formatted
// model reply. Reasoning traces are stripped first.
func parseDetection(response string) *Detection {
	cleaned := thinkRe.ReplaceAllString(response, "")

	detection := &Detection{}

	if m := intentRe.FindStringSubmatch(cleaned); m != nil {
		detection.Intent = strings.ToUpper(m[2])
	}
	if m := confRe.FindStringSubmatch(cleaned); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			detection.Confidence = n
		}
	}
	if m := prodRe.FindStringSubmatch(cleaned); m != nil {
		detection.Mentions = splitMentions(m[2])
	}

	return detection
}

func splitMentions(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var mentions []string
	for _, part := range prodSplit.Split(text, -1) {
		mention := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"'.`))
		if mention == "" {
			continue
		}
		if constant.PlaceholderMentions[strings.ToLower(mention)] {
			continue
		}
		mentions = append(mentions, mention)
	}
	return mentions
}
