package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/pkg/validator"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingPhone
	StateAwaitingCode
	StateAwaitingPassword
)

func (s State) String() string {
	switch s {
	case StateAwaitingPhone:
		return "awaiting_phone"
	case StateAwaitingCode:
		return "awaiting_code"
	case StateAwaitingPassword:
		return "awaiting_password"
	default:
		return "idle"
	}
}

const DefaultPromptTimeout = 5 * time.Minute

// Machine drives the /login challenge-response dialogue: phone number,
// one-time code, optional second-factor password. One attempt is in
// flight at a time; an attempt holds no state across restarts. A prompt
// left unanswered past the timeout abandons the attempt.
type Machine struct {
	mu        sync.Mutex
	state     State
	phone     string
	attemptID uuid.UUID
	timer     *time.Timer

	client    SessionClient
	prompter  Prompter
	validator *validator.Validator
	timeout   time.Duration
	logger    *zap.Logger
}

func New(client SessionClient, prompter Prompter, timeout time.Duration, logger *zap.Logger) *Machine {
	if timeout <= 0 {
		timeout = DefaultPromptTimeout
	}
	return &Machine{
		client:    client,
		prompter:  prompter,
		validator: validator.New(),
		timeout:   timeout,
		logger:    logger,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start begins a login attempt. An already authorized session is
// reported without opening a dialogue.
func (m *Machine) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		m.prompter.Prompt("Авторизация уже выполняется, ответьте на предыдущий вопрос.")
		return
	}

	if m.client.IsAuthorized(ctx) {
		m.prompter.Prompt("Аккаунт уже авторизован.")
		return
	}

	m.attemptID = uuid.New()
	m.state = StateAwaitingPhone
	m.logger.Info("login attempt started", zap.String("attempt_id", m.attemptID.String()))
	m.prompter.Prompt("Окей, давайте авторизуемся. Вышлите свой номер телефона в формате +71234567890:")
	m.armTimeout()
}

// HandleInput feeds one admin message into the dialogue. Returns false
// when no dialogue is in flight, so the caller can ignore the message.
func (m *Machine) HandleInput(ctx context.Context, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	text = strings.TrimSpace(text)

	switch m.state {
	case StateIdle:
		return false
	case StateAwaitingPhone:
		m.handlePhone(ctx, text)
	case StateAwaitingCode:
		m.handleCode(ctx, text)
	case StateAwaitingPassword:
		m.handlePassword(ctx, text)
	}

	return true
}

func (m *Machine) handlePhone(ctx context.Context, text string) {
	if err := m.validator.ValidatePhone(text); err != nil {
		m.prompter.Prompt("Номер должен начинаться с + и содержать только цифры. Попробуйте ещё раз:")
		m.armTimeout()
		return
	}

	if err := m.client.RequestCode(ctx, text); err != nil {
		m.logger.Error("failed to request sign-in code", zap.Error(err))
		m.abort(fmt.Sprintf("Ошибка при авторизации: %v", err))
		return
	}

	m.phone = text
	m.state = StateAwaitingCode
	m.prompter.Prompt(fmt.Sprintf("Код отправлен на номер %s. Введите код:", text))
	m.armTimeout()
}

func (m *Machine) handleCode(ctx context.Context, text string) {
	if err := m.validator.ValidateCode(text); err != nil {
		m.prompter.Prompt("Код должен состоять только из цифр. Попробуйте ещё раз:")
		m.armTimeout()
		return
	}

	outcome, err := m.client.SignIn(ctx, m.phone, text)
	switch outcome {
	case OutcomeOK:
		m.logger.Info("login attempt succeeded", zap.String("attempt_id", m.attemptID.String()))
		m.finish("Успешно авторизовались!")
	case OutcomeSecondFactor:
		m.state = StateAwaitingPassword
		m.prompter.Prompt("Введите пароль от аккаунта (2FA):")
		m.armTimeout()
	default:
		m.logger.Error("sign-in failed",
			zap.String("attempt_id", m.attemptID.String()), zap.Error(err))
		m.abort(fmt.Sprintf("Ошибка при авторизации: %v", err))
	}
}

func (m *Machine) handlePassword(ctx context.Context, text string) {
	if err := m.client.SubmitPassword(ctx, text); err != nil {
		m.logger.Error("second-factor verification failed",
			zap.String("attempt_id", m.attemptID.String()), zap.Error(err))
		m.abort(fmt.Sprintf("Ошибка при авторизации: %v", err))
		return
	}

	m.logger.Info("login attempt succeeded with second factor",
		zap.String("attempt_id", m.attemptID.String()))
	m.finish("Успешно авторизовались (с 2FA)!")
}

// armTimeout (re)arms the prompt timer for the current attempt. A stale
// timer fire from a previous attempt is ignored via the attempt id.
func (m *Machine) armTimeout() {
	if m.timer != nil {
		m.timer.Stop()
	}

	attemptID := m.attemptID
	m.timer = time.AfterFunc(m.timeout, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.state == StateIdle || m.attemptID != attemptID {
			return
		}

		m.logger.Warn("login attempt timed out",
			zap.String("attempt_id", attemptID.String()),
			zap.String("state", m.state.String()))
		m.reset()
		m.prompter.Prompt("Время ожидания истекло, авторизация прервана. Начните заново командой /login.")
	})
}

func (m *Machine) finish(message string) {
	m.reset()
	m.prompter.Prompt(message)
}

func (m *Machine) abort(message string) {
	m.reset()
	m.prompter.Prompt(message)
}

// reset must be called with the mutex held.
func (m *Machine) reset() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.state = StateIdle
	m.phone = ""
}
