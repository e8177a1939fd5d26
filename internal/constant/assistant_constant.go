package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Intent labels as the detector emits them. Actionable intents
	// mutate the cart or the order lifecycle; the rest are contextual.
	IntentAddProduct    = "AGREGAR_PRODUCTO"
	IntentRemoveProduct = "QUITAR_PRODUCTO"
	IntentShowOrder     = "MOSTRAR_PEDIDO"
	IntentClearOrder    = "VACIAR_PEDIDO"
	IntentFinalizeOrder = "FINALIZAR_PEDIDO"
	IntentConsultInfo   = "CONSULTAR_INFO"
	IntentChitChat      = "CHARLA"

	// SummaryDisclaimer marks every derived summary so it is never
	// mistaken for the authoritative cart.
	SummaryDisclaimer = "(resumen orientativo, el pedido real es el que muestra MOSTRAR_PEDIDO)"
)

// ActionableIntents are the intents that update LastValidAction.
var ActionableIntents = map[string]bool{
	IntentAddProduct:    true,
	IntentRemoveProduct: true,
	IntentShowOrder:     true,
	IntentClearOrder:    true,
	IntentFinalizeOrder: true,
}

// ConfirmGatedIntents ask for confirmation instead of executing when
// the detection confidence is below the threshold. Add and show only:
// a hesitant add must not touch the cart, while remove/clear/finalize
// run as detected.
var ConfirmGatedIntents = map[string]bool{
	IntentAddProduct: true,
	IntentShowOrder:  true,
}

// PlaceholderMentions are detector outputs that mean "no product",
// filtered before resolution.
var PlaceholderMentions = map[string]bool{
	"ninguno":  true,
	"ninguna":  true,
	"nada":     true,
	"none":     true,
	"nothing":  true,
	"producto": true,
}
