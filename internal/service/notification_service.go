package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/mailer"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/serverutils"
)

var ErrInvalidEmailPayload = errors.New("invalid email payload")

type INotificationService interface {
	Send(ctx context.Context, req *dto.EmailRequest) error
}

type notificationService struct {
	mailer mailer.IEmailService
	logger logger.ILogger
}

func NewNotificationService(m mailer.IEmailService, log logger.ILogger) INotificationService {
	return &notificationService{mailer: m, logger: log}
}

func (s *notificationService) Send(ctx context.Context, req *dto.EmailRequest) error {
	var (
		msg mailer.Message
		err error
	)

	switch req.Type {
	case constant.EmailTypeContact:
		msg, err = buildContactMessage(req.Data)
	case constant.EmailTypeLead:
		msg, err = buildLeadMessage(req.Data)
	default:
		err = fmt.Errorf("%w: unknown type %q", ErrInvalidEmailPayload, req.Type)
	}
	if err != nil {
		return err
	}

	if err := s.mailer.Send(msg); err != nil {
		s.logger.Error("NotificationService", "Email dispatch failed", map[string]interface{}{
			"type":  req.Type,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("NotificationService", "Email dispatched", map[string]interface{}{
		"type":    req.Type,
		"subject": msg.Subject,
	})
	return nil
}

func buildContactMessage(raw json.RawMessage) (mailer.Message, error) {
	var data dto.ContactFormData
	if err := json.Unmarshal(raw, &data); err != nil {
		return mailer.Message{}, fmt.Errorf("%w: %v", ErrInvalidEmailPayload, err)
	}
	if err := serverutils.ValidateRequest(&data); err != nil {
		return mailer.Message{}, fmt.Errorf("%w: %v", ErrInvalidEmailPayload, err)
	}

	phone := data.Phone
	if phone == "" {
		phone = "No indicado"
	}

	return mailer.Message{
		Subject: fmt.Sprintf("Nuevo contacto web: %s", data.Name),
		Body:    fmt.Sprintf("Nombre: %s\nEmail: %s\nTeléfono: %s\n\nMensaje:\n%s", data.Name, data.Email, phone, data.Message),
		ReplyTo: data.Email,
	}, nil
}

func buildLeadMessage(raw json.RawMessage) (mailer.Message, error) {
	var data dto.LeadEmailData
	if err := json.Unmarshal(raw, &data); err != nil {
		return mailer.Message{}, fmt.Errorf("%w: %v", ErrInvalidEmailPayload, err)
	}
	if err := serverutils.ValidateRequest(&data); err != nil {
		return mailer.Message{}, fmt.Errorf("%w: %v", ErrInvalidEmailPayload, err)
	}
	if data.Summary.ClientName == "" && data.Summary.CaseSummary == "" {
		return mailer.Message{}, fmt.Errorf("%w: lead summary is empty", ErrInvalidEmailPayload)
	}

	tag, status := "INFO", "SOLO CONSULTA"
	if data.ContactRequested {
		tag, status = "CONTACTAR", "SOLICITA CONTACTO"
	}

	satisfaction := string(data.Satisfaction)
	if satisfaction == "" {
		satisfaction = "No indicada"
	}

	s := data.Summary
	var b strings.Builder
	b.WriteString("REPORTE DE ASISTENTE VIRTUAL\n")
	b.WriteString("============================\n")
	fmt.Fprintf(&b, "ESTADO: %s\n", status)
	fmt.Fprintf(&b, "URGENCIA: %s\n", s.UrgencyLevel)
	fmt.Fprintf(&b, "CATEGORÍA: %s\n", s.LegalCategory)
	fmt.Fprintf(&b, "SATISFACCIÓN: %s\n", satisfaction)
	fmt.Fprintf(&b, "CLIENTE: %s (%s)\n", s.ClientName, s.ContactInfo)
	fmt.Fprintf(&b, "RESUMEN: %s\n", s.CaseSummary)
	fmt.Fprintf(&b, "RECOMENDACIÓN: %s\n", s.RecommendedAction)

	return mailer.Message{
		Subject: fmt.Sprintf("[LEAD IA] %s - %s", tag, s.LegalCategory),
		Body:    b.String(),
	}, nil
}
