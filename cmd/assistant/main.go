package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/cokeastorga/astorgayabogados/internal/config"
	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/internal/service"
	"github.com/cokeastorga/astorgayabogados/pkg/assistant"
	"github.com/cokeastorga/astorgayabogados/pkg/localqueue"
	"github.com/cokeastorga/astorgayabogados/pkg/relay"

	"github.com/fatih/color"
)

const help = `Comandos:
  <número>    elegir una opción
  /cerrar     terminar la conversación
  /noticias   noticias legales recientes
  /contacto   enviar el formulario de contacto
  /pendientes sesiones en cola local
  /salir      salir`

type cli struct {
	in         *bufio.Scanner
	assistant  *assistant.Assistant
	dispatcher *assistant.Dispatcher
	store      *assistant.AuditStore
	relay      *relay.Client
	shown      int
}

func main() {
	cfg := config.Load()
	log := logger.NewIsolatedLogger(cfg.Assistant.LogFilePath)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queueCfg := localqueue.DefaultConfig(cfg.Assistant.LocalQueuePath)
	queueCfg.Logger = log
	queue, err := localqueue.Open(queueCfg)
	if err != nil {
		color.Red("No se pudo abrir la cola local: %v", err)
		os.Exit(1)
	}
	defer queue.Close()

	client := relay.NewClient(cfg.Assistant.RelayURL, &http.Client{})
	timeout := cfg.Assistant.RequestTimeout

	conv := assistant.NewConversation(client, assistant.ConversationConfig{
		Timeout:       timeout,
		HistoryWindow: cfg.Assistant.HistoryWindow,
		FirmPhone:     cfg.Assistant.FirmPhone,
		DegradedReply: service.DegradedReply(cfg.Assistant.FirmPhone),
	}, log)

	dispatcher := assistant.NewDispatcher(client, timeout, log)
	store := assistant.NewAuditStore(client, queue, timeout, log)
	pipeline := assistant.NewPipeline(assistant.NewSummarizer(client, timeout, log), dispatcher, store, log)

	device := entity.DeviceInfo{
		UserAgent: "astorga-assistant-cli",
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Language:  os.Getenv("LANG"),
	}

	c := &cli{
		in:         bufio.NewScanner(os.Stdin),
		assistant:  assistant.New(conv, pipeline, assistant.Config{Device: device}, log),
		dispatcher: dispatcher,
		store:      store,
		relay:      client,
	}

	color.Cyan("Astorga y Asociados · Asistente Legal")
	fmt.Println(help)
	c.render(c.assistant.Open())

	if err := c.loop(ctx); err != nil {
		log.Error("Assistant", "CLI stopped", map[string]interface{}{"error": err.Error()})
	}
}

func (c *cli) loop(ctx context.Context) error {
	for {
		line, ok := c.prompt("> ")
		if !ok {
			return c.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		switch line {
		case "":
			continue
		case "/salir":
			return nil
		case "/cerrar":
			c.close(ctx)
			continue
		case "/noticias":
			c.news(ctx)
			continue
		case "/contacto":
			c.contactForm(ctx)
			continue
		case "/pendientes":
			c.pending()
			continue
		}

		view := c.assistant.Snapshot()
		if !view.Open {
			view = c.assistant.Open()
			c.shown = 0
			c.render(view)
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(view.Choices) {
			c.choose(ctx, view, view.Choices[n-1].ID)
			continue
		}

		color.HiBlack("Pensando...")
		v, err := c.assistant.SendText(ctx, line)
		c.report(v, err)
	}
}

func (c *cli) choose(ctx context.Context, view assistant.View, id string) {
	if _, ok := view.State.(assistant.Fallback); ok {
		v, err := c.assistant.ChooseFallback(id)
		c.report(v, err)
		if _, ok := v.State.(assistant.AwaitingFeedback); ok && err == nil {
			c.feedback(ctx)
		}
		return
	}
	color.HiBlack("Pensando...")
	v, err := c.assistant.SelectTopic(ctx, id)
	c.report(v, err)
}

func (c *cli) close(ctx context.Context) {
	v, err := c.assistant.RequestClose()
	if err != nil {
		c.report(v, err)
		return
	}
	if !v.Open {
		color.HiBlack("Conversación cerrada.")
		c.shown = 0
		return
	}
	c.feedback(ctx)
}

// feedback walks the wizard: satisfaction, follow-up, then contact if requested.
func (c *cli) feedback(ctx context.Context) {
	var sat entity.Satisfaction
	for !sat.Valid() {
		line, ok := c.prompt("¿Cómo fue su experiencia? (1) buena (2) regular (3) mala: ")
		if !ok {
			return
		}
		sat = map[string]entity.Satisfaction{
			"1": entity.SatisfactionPositive,
			"2": entity.SatisfactionNeutral,
			"3": entity.SatisfactionNegative,
		}[line]
	}
	if _, err := c.assistant.RateSatisfaction(sat); err != nil {
		color.Red("%v", err)
		return
	}

	line, ok := c.prompt("¿Desea que un abogado lo contacte? (s/n): ")
	if !ok {
		return
	}
	wants := strings.HasPrefix(strings.ToLower(line), "s")
	v, err := c.assistant.DecideFollowUp(ctx, wants)
	if err != nil {
		color.Red("%v", err)
		return
	}

	for wants && !c.assistant.CanConfirm() {
		contact, ok := c.prompt("Teléfono o correo de contacto: ")
		if !ok {
			return
		}
		if _, err := c.assistant.SetContact(contact); err != nil {
			color.Red("%v", err)
			return
		}
	}
	if wants {
		color.HiBlack("Generando resumen...")
		if v, err = c.assistant.Confirm(ctx); err != nil {
			color.Red("%v", err)
			return
		}
	}
	c.closed(v)
}

func (c *cli) closed(v assistant.View) {
	c.shown = 0
	if v.Result == nil {
		return
	}
	color.Green("Gracias. Su consulta quedó registrada.")
	color.HiBlack("Categoría: %s · Urgencia: %s", v.Result.Summary.LegalCategory, v.Result.Summary.UrgencyLevel)
	if !v.Result.Persist.Remote {
		color.Yellow("Sin conexión con el servidor, la sesión quedó en cola local.")
	}
}

func (c *cli) news(ctx context.Context) {
	res, err := c.relay.News(ctx)
	if err != nil {
		color.Red("No fue posible obtener noticias: %v", err)
		return
	}
	fmt.Println(res.Text)
	for _, s := range res.Sources {
		color.HiBlack("  %s  %s", s.Title, s.URI)
	}
}

func (c *cli) contactForm(ctx context.Context) {
	var form dto.ContactFormData
	fields := []struct {
		label string
		dst   *string
	}{
		{"Nombre: ", &form.Name},
		{"Correo: ", &form.Email},
		{"Teléfono (opcional): ", &form.Phone},
		{"Mensaje: ", &form.Message},
	}
	for _, f := range fields {
		line, ok := c.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = line
	}
	if c.dispatcher.SendContactForm(ctx, form) {
		color.Green("Mensaje enviado.")
		return
	}
	color.Red("No fue posible enviar el mensaje. Llámenos al teléfono de la firma.")
}

func (c *cli) pending() {
	records, err := c.store.Pending()
	if err != nil {
		color.Red("%v", err)
		return
	}
	color.Cyan("%d sesiones pendientes de sincronizar", len(records))
	for _, r := range records {
		color.HiBlack("  %s  %d mensajes", r.Id, len(r.Messages))
	}
}

func (c *cli) report(v assistant.View, err error) {
	if err != nil {
		color.Yellow("%v", err)
	}
	c.render(v)
}

// render prints only the messages not shown yet, then the current choices.
func (c *cli) render(v assistant.View) {
	if c.shown > len(v.Messages) {
		c.shown = 0
	}
	for _, m := range v.Messages[c.shown:] {
		if m.Role == entity.ChatRoleModel {
			color.Blue("Asistente: %s", m.Text)
		} else {
			color.White("Usted: %s", m.Text)
		}
	}
	c.shown = len(v.Messages)

	if v.Link != "" {
		color.Magenta("Enlace: %s", v.Link)
	}
	for i, ch := range v.Choices {
		fmt.Printf("  %d) %s\n", i+1, ch.Label)
	}
}

func (c *cli) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
