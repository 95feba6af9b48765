package assistant

const Greeting = "Bienvenido a Astorga y Asociados. Para una atención rápida, seleccione su área de interés:"

// Topic is one of the quick-start options offered when the chat opens.
// Label is what the transcript shows, Prompt is what the relay receives.
type Topic struct {
	ID     string
	Label  string
	Prompt string
}

var topics = []Topic{
	{ID: "penal", Label: "🛑 Urgencia Penal / Delitos", Prompt: "Tengo un problema penal urgente (delito, querella o formalización)."},
	{ID: "civil", Label: "⚖️ Demanda Civil / Deudas", Prompt: "Tengo una demanda civil o problema de deudas/contratos."},
	{ID: "laboral", Label: "💼 Despido / Laboral", Prompt: "Tengo un problema laboral o despido injustificado."},
	{ID: "familia", Label: "👨‍👩‍👧 Familia / Divorcio", Prompt: "Necesito ayuda con un tema de familia, pensión o divorcio."},
	{ID: "otro", Label: "❓ Otra consulta", Prompt: "Tengo una consulta general."},
}

func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

func findTopic(id string) (Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
