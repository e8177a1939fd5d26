package constant

// Deterministic Spanish fallbacks. Every customer-facing message that
// normally goes through the responder model has one of these behind it,
// so an LLM outage degrades tone, never availability.
const (
	TemplateEmptyOrder = "Parece que todavía no tenés productos en tu pedido."

	// args: quantity, product name, running total
	TemplateAddedToOrder = "Se agregó %d unidad(es) de '%s' al pedido. Total parcial: $%.2f"

	// args: itemized listing, total
	TemplateShowOrder = "Actualmente tu pedido tiene:\n\n%s\n\n🧾 Total acumulado: $%.2f\n¿Querés agregar algo más o cerrar el pedido?"

	// args: product name, unit price, quantity, subtotal
	TemplateOrderLine = "* %s — $%.2f x%d = $%.2f"

	// args: quantity, product name
	TemplateRemovedFromOrder = "Se quitó %d unidad(es) de '%s' del pedido."

	// args: product name
	TemplateNotInOrder = "'%s' no está en tu pedido."

	TemplateOrderCleared = "Listo, vacié tu pedido. Empezamos de cero cuando quieras."

	// args: itemized listing, total
	TemplateFinalizeAskDetails = "¡Perfecto! Tu pedido quedó así:\n\n%s\n\n🧾 Total: $%.2f\n\nPara terminar, pasame tu nombre, dirección y un horario de entrega."

	TemplateFinalizeEmptyOrder = "Todavía no tenés productos en el pedido, así que no hay nada para cerrar. ¿Querés que te muestre algo?"

	TemplateOrderConfirmed = "¡Gracias! Registramos tu pedido y te avisamos cuando salga para tu casa. 🛒"

	TemplateOrderConfirmRetry = "Tomé tus datos, pero no pude registrar el pedido todavía. Probá confirmarlo de nuevo en un ratito."

	// args: mention
	TemplateNotAvailable = "No encontré ningún producto relacionado con '%s'. ¿Te ayudo con otra cosa?"

	// args: mention, numbered options
	TemplateClarify = "Encontré varias opciones para '%s':\n\n%s\n\n¿Cuál de estas querés?"

	// args: product listing
	TemplateProductList = "Tenemos estos productos disponibles:\n\n%s\n¿Querés agregar alguno de esos productos a tu pedido?"

	// args: product name, unit price
	TemplateProductListLine = "- %s: $%.2f\n"

	// args: dish, ingredient listing
	TemplateIngredientSuggestion = "Para preparar %s te puede servir:\n\n%s\n¿Agrego alguno de estos al pedido?"

	TemplateChitChatFallback = "¡Hola! Soy el asistente del supermercado. Puedo mostrarte productos, armar tu pedido y cerrarlo cuando quieras. ¿Qué estás buscando?"

	TemplateStoreInfoFallback = "No tengo esa información a mano en este momento, pero puedo ayudarte con los productos y tu pedido."

	TemplateDidNotUnderstand = "Perdón, no te entendí bien. ¿Me lo repetís de otra forma? Puedo mostrarte productos o armar tu pedido."

	// args: human description of the low-confidence action
	TemplateConfirmIntent = "Me parece que querés %s, pero no estoy del todo seguro. ¿Me lo confirmás?"
)

// IntentDescriptions phrases each actionable intent for confirmation
// questions.
var IntentDescriptions = map[string]string{
	IntentAddProduct:    "agregar productos al pedido",
	IntentRemoveProduct: "quitar productos del pedido",
	IntentShowOrder:     "ver tu pedido",
	IntentClearOrder:    "vaciar el pedido",
	IntentFinalizeOrder: "cerrar el pedido",
}
