// Package assistant is the client side of the legal intake chat: the conversation
// session, the scripted fallback flow and the close-time pipeline, driven by one
// state machine per visitor.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
)

var (
	ErrNotOpen           = errors.New("assistant is not open")
	ErrBusy              = errors.New("a request is already in flight")
	ErrUseButtons        = errors.New("utilice los botones para continuar")
	ErrInvalidTransition = errors.New("operation not allowed in the current state")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrInvalidFeedback   = errors.New("invalid satisfaction value")
	ErrContactRequired   = errors.New("contact is required to finish")
)

// ChatSender is satisfied by *Conversation.
type ChatSender interface {
	Send(ctx context.Context, message string) SendResult
	SetTopic(topic string)
	Reset()
}

type Choice struct {
	ID    string
	Label string
}

// View is what a front end renders after each operation.
type View struct {
	Open      bool
	SessionId string
	State     State
	Messages  []entity.ChatMessage
	Choices   []Choice
	// Link is set when the last fallback choice was an external link.
	Link       string
	CanConfirm bool
	// Result is set once, by the operation that ran the close pipeline.
	Result *PipelineResult
}

type Config struct {
	Device entity.DeviceInfo
	Graph  *Graph
	Clock  func() time.Time
}

type Assistant struct {
	mu sync.Mutex

	sender   ChatSender
	pipeline *Pipeline
	graph    *Graph
	device   entity.DeviceInfo
	now      func() time.Time
	logger   logger.ILogger

	session         *entity.ChatSession
	state           State
	tree            *Tree
	interacted      bool
	fallbackEntered bool
}

func New(sender ChatSender, pipeline *Pipeline, cfg Config, log logger.ILogger) *Assistant {
	if cfg.Graph == nil {
		cfg.Graph = DefaultGraph()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Assistant{
		sender:   sender,
		pipeline: pipeline,
		graph:    cfg.Graph,
		device:   cfg.Device,
		now:      cfg.Clock,
		logger:   log,
		state:    Idle{},
	}
}

// Open starts a session with the greeting; opening an open assistant is a no-op.
func (a *Assistant) Open() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		a.session = entity.NewChatSession(a.now(), a.device)
		a.session.AppendMessage(entity.ChatRoleModel, Greeting, a.now())
		a.state = Idle{}
		a.tree = nil
		a.interacted = false
		a.fallbackEntered = false
		a.sender.Reset()
		a.logger.Info("Assistant", "Session opened", map[string]interface{}{"session_id": a.session.Id})
	}
	return a.viewLocked()
}

func (a *Assistant) SelectTopic(ctx context.Context, topicID string) (View, error) {
	topic, ok := findTopic(topicID)
	if !ok {
		return a.Snapshot(), fmt.Errorf("%w: topic %s", ErrUnknownOption, topicID)
	}
	return a.turn(ctx, topic.Label, topic.Prompt, func(s *entity.ChatSession) {
		s.AreaOfInterest = topic.ID
		a.sender.SetTopic(topic.ID)
	})
}

func (a *Assistant) SendText(ctx context.Context, text string) (View, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return a.Snapshot(), ErrEmptyMessage
	}
	return a.turn(ctx, text, text, nil)
}

// turn appends the visible user message, releases the lock for the relay call and
// commits the outcome. The Thinking state rejects any overlapping call.
func (a *Assistant) turn(ctx context.Context, visible, outbound string, prepare func(*entity.ChatSession)) (View, error) {
	a.mu.Lock()
	if err := a.checkInputLocked(); err != nil {
		v := a.viewLocked()
		a.mu.Unlock()
		return v, err
	}
	if prepare != nil {
		prepare(a.session)
	}
	a.session.AppendMessage(entity.ChatRoleUser, visible, a.now())
	a.interacted = true
	a.state = Thinking{}
	a.mu.Unlock()

	res := a.sender.Send(ctx, outbound)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.session.AppendMessage(entity.ChatRoleModel, res.Text, a.now())
	if !res.IsError {
		a.state = Replied{}
		return a.viewLocked(), nil
	}

	a.state = Failed{Reason: res.Text}
	a.enterFallbackLocked()
	return a.viewLocked(), nil
}

func (a *Assistant) checkInputLocked() error {
	if a.session == nil {
		return ErrNotOpen
	}
	switch a.state.(type) {
	case Thinking, Summarizing:
		return ErrBusy
	case Fallback:
		return ErrUseButtons
	case AwaitingFeedback, Failed:
		return ErrInvalidTransition
	case Idle, Replied:
	}
	return nil
}

func (a *Assistant) enterFallbackLocked() {
	if a.fallbackEntered {
		return
	}
	a.fallbackEntered = true
	a.tree = NewTree(a.graph)
	root := a.tree.Current()
	a.session.AppendMessage(entity.ChatRoleModel, root.Message, a.now())
	a.state = Fallback{Node: root}
	a.logger.Warn("Assistant", "Entering fallback mode", map[string]interface{}{"session_id": a.session.Id})
}

// ChooseFallback records the chosen option as a user message and follows it.
func (a *Assistant) ChooseFallback(optionID string) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return a.viewLocked(), ErrNotOpen
	}
	if _, ok := a.state.(Fallback); !ok {
		return a.viewLocked(), ErrInvalidTransition
	}

	step, err := a.tree.Choose(optionID)
	if err != nil {
		return a.viewLocked(), err
	}
	a.session.AppendMessage(entity.ChatRoleUser, step.Option.Label, a.now())

	switch {
	case step.Finished:
		a.state = AwaitingFeedback{Step: StepSatisfaction}
	case step.Link != "":
		v := a.viewLocked()
		v.Link = step.Link
		return v, nil
	default:
		a.session.AppendMessage(entity.ChatRoleModel, step.Node.Message, a.now())
		a.state = Fallback{Node: step.Node}
	}
	return a.viewLocked(), nil
}

// RequestClose ends an untouched session at once; anything else goes to the feedback wizard.
func (a *Assistant) RequestClose() (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return a.viewLocked(), ErrNotOpen
	}

	switch a.state.(type) {
	case Thinking, Summarizing:
		return a.viewLocked(), ErrBusy
	case AwaitingFeedback:
		return a.viewLocked(), nil
	case Idle, Replied, Failed, Fallback:
	}

	if len(a.session.Messages) < 2 && !a.interacted {
		a.logger.Debug("Assistant", "Closing empty session", map[string]interface{}{"session_id": a.session.Id})
		a.discardLocked()
		return a.viewLocked(), nil
	}

	a.state = AwaitingFeedback{Step: StepSatisfaction}
	return a.viewLocked(), nil
}

func (a *Assistant) RateSatisfaction(s entity.Satisfaction) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fb, ok := a.state.(AwaitingFeedback)
	if !ok || fb.Step != StepSatisfaction {
		return a.viewLocked(), ErrInvalidTransition
	}
	if !s.Valid() {
		return a.viewLocked(), ErrInvalidFeedback
	}
	fb.Satisfaction = s
	fb.Step = StepFollowUp
	a.state = fb
	return a.viewLocked(), nil
}

// DecideFollowUp either asks for a contact (yes) or finishes the session (no).
func (a *Assistant) DecideFollowUp(ctx context.Context, wantsContact bool) (View, error) {
	a.mu.Lock()
	fb, ok := a.state.(AwaitingFeedback)
	if !ok || fb.Step != StepFollowUp {
		v := a.viewLocked()
		a.mu.Unlock()
		return v, ErrInvalidTransition
	}
	fb.FollowUp = &wantsContact
	if wantsContact {
		fb.Step = StepContact
		a.state = fb
		v := a.viewLocked()
		a.mu.Unlock()
		return v, nil
	}
	a.state = fb
	a.mu.Unlock()

	return a.finish(ctx)
}

func (a *Assistant) SetContact(contact string) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fb, ok := a.state.(AwaitingFeedback)
	if !ok || fb.Step != StepContact {
		return a.viewLocked(), ErrInvalidTransition
	}
	fb.Contact = contact
	a.state = fb
	return a.viewLocked(), nil
}

// CanConfirm is the enabled state of the "Confirmar y Finalizar" action.
func (a *Assistant) CanConfirm() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canConfirmLocked()
}

func (a *Assistant) canConfirmLocked() bool {
	fb, ok := a.state.(AwaitingFeedback)
	return ok && fb.Step == StepContact && strings.TrimSpace(fb.Contact) != ""
}

func (a *Assistant) Confirm(ctx context.Context) (View, error) {
	a.mu.Lock()
	if _, ok := a.state.(AwaitingFeedback); !ok {
		v := a.viewLocked()
		a.mu.Unlock()
		return v, ErrInvalidTransition
	}
	if !a.canConfirmLocked() {
		v := a.viewLocked()
		a.mu.Unlock()
		return v, ErrContactRequired
	}
	a.mu.Unlock()

	return a.finish(ctx)
}

// finish runs the close pipeline and discards the session. Entered from AwaitingFeedback only.
func (a *Assistant) finish(ctx context.Context) (View, error) {
	a.mu.Lock()
	fb := a.state.(AwaitingFeedback)
	session := a.session
	req := CloseRequest{
		ManualMode:       a.fallbackEntered,
		ContactRequested: fb.FollowUp != nil && *fb.FollowUp,
		Contact:          fb.Contact,
		Satisfaction:     fb.Satisfaction,
	}
	a.state = Summarizing{}
	a.mu.Unlock()

	result := a.pipeline.Run(ctx, session, req)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.discardLocked()
	v := a.viewLocked()
	v.Result = &result
	return v, nil
}

func (a *Assistant) discardLocked() {
	a.session = nil
	a.tree = nil
	a.state = Idle{}
	a.interacted = false
	a.fallbackEntered = false
	a.sender.Reset()
}

func (a *Assistant) Snapshot() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewLocked()
}

func (a *Assistant) viewLocked() View {
	v := View{State: a.state, CanConfirm: a.canConfirmLocked()}
	if a.session == nil {
		return v
	}

	v.Open = true
	v.SessionId = a.session.Id
	v.Messages = make([]entity.ChatMessage, len(a.session.Messages))
	copy(v.Messages, a.session.Messages)

	switch st := a.state.(type) {
	case Fallback:
		for _, o := range st.Node.Options {
			v.Choices = append(v.Choices, Choice{ID: o.ID, Label: o.Label})
		}
	case Idle:
		if !a.interacted {
			for _, t := range topics {
				v.Choices = append(v.Choices, Choice{ID: t.ID, Label: t.Label})
			}
		}
	}
	return v
}
