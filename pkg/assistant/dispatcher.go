package assistant

import (
	"context"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
)

type EmailRelay interface {
	Email(ctx context.Context, emailType string, data interface{}) error
}

// Dispatcher hands lead reports and contact forms to the email relay.
// Failures are logged and reported as false, never returned.
type Dispatcher struct {
	relay   EmailRelay
	timeout time.Duration
	logger  logger.ILogger
}

func NewDispatcher(relay EmailRelay, timeout time.Duration, log logger.ILogger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Dispatcher{relay: relay, timeout: timeout, logger: log}
}

// ShouldNotify is true when the visitor asked to be contacted or the case is urgent.
func ShouldNotify(summary entity.LeadSummary, contactRequested bool) bool {
	return contactRequested || summary.UrgencyLevel.IsHigh()
}

func (d *Dispatcher) SendLead(ctx context.Context, summary entity.LeadSummary, contactRequested bool, satisfaction entity.Satisfaction) bool {
	return d.send(ctx, constant.EmailTypeLead, dto.LeadEmailData{
		Summary:          summary,
		ContactRequested: contactRequested,
		Satisfaction:     satisfaction,
	})
}

func (d *Dispatcher) SendContactForm(ctx context.Context, form dto.ContactFormData) bool {
	return d.send(ctx, constant.EmailTypeContact, form)
}

func (d *Dispatcher) send(ctx context.Context, emailType string, data interface{}) bool {
	reqCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.relay.Email(reqCtx, emailType, data); err != nil {
		d.logger.Error("Dispatcher", "Email dispatch failed", map[string]interface{}{
			"type":  emailType,
			"error": err.Error(),
		})
		return false
	}
	d.logger.Info("Dispatcher", "Email dispatched", map[string]interface{}{"type": emailType})
	return true
}
