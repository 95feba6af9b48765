package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// %s is the visitor's initial topic context, "General" when absent.
	IntakeSystemPromptV1 = `Eres un abogado senior del equipo de admisión de "Astorga y Asociados".

OBJETIVO:
Tu trabajo es realizar una entrevista inicial (triaje) para recopilar antecedentes clave antes de agendar una reunión con el socio especialista.

INSTRUCCIONES DE COMPORTAMIENTO:
1. Personalidad: Profesional, empático, seguro, pero directo. No suenes robótico.
2. Flujo:
   - Saluda cordialmente.
   - Escucha el problema del usuario.
   - Haz preguntas UNA A UNA para profundizar (ej: "¿Hace cuánto ocurrió esto?", "¿Ha recibido alguna notificación judicial?", "¿Cuál es su nombre para dirigirme a usted?").
   - Si el usuario menciona temas graves (penal/detención), prioriza la captación inmediata.
   - Ofrece orientación general (procedimiento) pero NUNCA garantices resultados ni des estrategias de defensa específicas (eso es para la reunión).
   - Cierre: Trata de coordinar una reunión presencial o videollamada. Pide nombre y teléfono si no lo han dado.

RESTRICCIONES:
- No inventes leyes.
- Mantén respuestas breves (máx 60 palabras) para mantener la conversación fluida.
- Si preguntan precios, di que dependen de la complejidad y se evalúan en la primera reunión.

CONTEXTO INICIAL DEL USUARIO: %s`

	// %s is the role-prefixed transcript.
	LeadExtractionPromptV1 = `Analiza la siguiente conversación entre un abogado de admisión (MODEL) y un cliente potencial (USER).
Extrae la información en formato JSON estrictamente con los campos clientName, contactInfo, legalCategory, caseSummary, urgencyLevel (BAJA | MEDIA | ALTA | CRÍTICA) y recommendedAction.

CONVERSACIÓN:
%s`

	// %s is the firm phone number.
	DegradedReplyTemplate = "Lo siento, en este momento nuestros sistemas están experimentando una alta demanda. Por favor, contáctenos directamente al %s o a través del formulario de contacto."

	LegalNewsPrompt = "Busca 3 titulares breves y relevantes del Poder Judicial de Chile (pjud.cl) o noticias legales de Chile de esta semana. Prioriza fuentes oficiales."

	LegalNewsOfflineText = "⚠️ **Modo Sin Conexión**\n\nNo se pudieron cargar las noticias en tiempo real.\n\nSin embargo, destacamos que el **Poder Judicial** mantiene sus canales de atención remota operativos y la **Corte Suprema** ha actualizado sus criterios respecto a la litigación digital."

	LegalNewsEmptyText = "No se encontraron noticias recientes."

	LegalNewsMaxSources = 3
)

// Manual review record returned by structured extraction when every provider failed.
const (
	ManualReviewClientName        = "No detectado (Error Sistema)"
	ManualReviewContactInfo       = "Revisar chat manual"
	ManualReviewLegalCategory     = "Indeterminado"
	ManualReviewCaseSummary       = "Error en el procesamiento del resumen."
	ManualReviewRecommendedAction = "Revisión manual requerida"
)

// Empty transcript record, produced without calling any provider.
const (
	EmptyTranscriptClientName        = "Desconocido"
	EmptyTranscriptContactInfo       = "No provisto"
	EmptyTranscriptLegalCategory     = "General"
	EmptyTranscriptCaseSummary       = "No hay suficiente información."
	EmptyTranscriptRecommendedAction = "Revisar logs"
)

// Email relay payload types.
const (
	EmailTypeContact = "contact"
	EmailTypeLead    = "lead"
)

// Provider status header set by the relay when the gateway exhausted every provider.
const (
	ProviderStatusHeader    = "X-Provider-Status"
	ProviderStatusExhausted = "exhausted"
)

// Event types published on the bus.
const (
	EventLeadCaptured = "LEAD_CAPTURED"
)
