// Package assistant implements the profile-editing chat assistant: a
// two-state loop that detects an update intent in free text, asks for the
// new value, validates it, and submits a single-field profile update.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
	"skillhive-agent/internal/session"
)

// Field identifies the profile field a follow-up answer is expected for.
// The string value doubles as the update-payload key.
type Field string

const (
	FieldNone      Field = ""
	FieldEmail     Field = "email"
	FieldAddress   Field = "address"
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldBirthday  Field = "birthday"
)

const (
	GreetingText = "Hi! Need help editing your profile?"
	fallbackText = "I didn't get that. Try saying things like 'change my first name' or 'update my birthday'."
)

var fieldLabels = map[Field]string{
	FieldEmail:     "email",
	FieldAddress:   "address",
	FieldFirstName: "first name",
	FieldLastName:  "last name",
	FieldBirthday:  "birthday",
}

var fieldPrompts = map[Field]string{
	FieldEmail:     "Sure, what is your new email?",
	FieldAddress:   "What is your new address?",
	FieldFirstName: "What is your new first name?",
	FieldLastName:  "What is your new last name?",
	FieldBirthday:  "Please enter your birth date in YYYY-MM-DD format.",
}

// Intent keywords, checked in this fixed order; first match wins.
var intentOrder = []struct {
	keywords []string
	field    Field
}{
	{[]string{"email"}, FieldEmail},
	{[]string{"address"}, FieldAddress},
	{[]string{"first name"}, FieldFirstName},
	{[]string{"last name"}, FieldLastName},
	{[]string{"birthday", "birth date"}, FieldBirthday},
}

var emailPattern = regexp.MustCompile(`\b\S+@\S+\.\S+\b`)

var birthdayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Assistant is the conversational field editor. Handle processes one turn
// at a time; the mutex keeps transports from interleaving turns, preserving
// the one-pending-field-at-a-time invariant.
type Assistant struct {
	backend ports.Backend
	session *session.Session
	store   ports.Storage
	log     *zap.Logger

	mu         sync.Mutex
	pending    Field
	transcript []domain.Message
}

func New(backend ports.Backend, sess *session.Session, store ports.Storage, log *zap.Logger) *Assistant {
	return &Assistant{
		backend: backend,
		session: sess,
		store:   store,
		log:     log,
	}
}

// Greet appends and returns the opening bot message.
func (a *Assistant) Greet() domain.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.appendLocked(GreetingText, domain.SenderBot)
}

// Pending reports which field, if any, the next input will be treated as
// the value for.
func (a *Assistant) Pending() Field {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Transcript returns a copy of the conversation so far.
func (a *Assistant) Transcript() []domain.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Message, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// Handle processes one user turn and returns the bot replies it produced.
// Empty input is ignored entirely. Backend failures never escape: they are
// reported as chat messages.
func (a *Assistant) Handle(ctx context.Context, text string) []domain.Message {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.appendLocked(trimmed, domain.SenderUser)

	// While a field is pending, the next input is always its value. It is
	// never re-parsed for a new intent, even if it contains one.
	if a.pending != FieldNone {
		return []domain.Message{a.handleValueLocked(ctx, trimmed)}
	}
	return []domain.Message{a.handleIntentLocked(trimmed)}
}

func (a *Assistant) handleIntentLocked(text string) domain.Message {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "change") || strings.Contains(lower, "update") {
		for _, entry := range intentOrder {
			for _, kw := range entry.keywords {
				if strings.Contains(lower, kw) {
					a.pending = entry.field
					return a.appendLocked(fieldPrompts[entry.field], domain.SenderBot)
				}
			}
		}
	}
	return a.appendLocked(fallbackText, domain.SenderBot)
}

func (a *Assistant) handleValueLocked(ctx context.Context, value string) domain.Message {
	field := a.pending

	// The payload value is the raw input except for email, where the first
	// address-looking substring is extracted.
	payload := value
	switch field {
	case FieldEmail:
		match := emailPattern.FindString(value)
		if match == "" {
			// Stay pending; this is the one transition that does not advance.
			return a.appendLocked("That doesn't look like a valid email. Try again?", domain.SenderBot)
		}
		payload = match
	case FieldBirthday:
		normalized, ok := normalizeDate(value)
		if !ok {
			return a.appendLocked("That doesn't look like a valid date. Use YYYY-MM-DD.", domain.SenderBot)
		}
		payload = normalized
	}

	a.pending = FieldNone
	label := fieldLabels[field]

	updated, err := a.backend.UpdateProfile(ctx, a.session.UserID(), map[string]string{string(field): payload})
	if err != nil {
		a.log.Warn("profile update failed", zap.String("field", label), zap.Error(err))
		return a.appendLocked(fmt.Sprintf("Failed to update %s. Try again later.", label), domain.SenderBot)
	}

	if current := a.session.User(); current != nil {
		a.session.SetUser(mergeUser(*current, *updated))
	}
	return a.appendLocked(fmt.Sprintf("Your %s has been updated to %q!", label, value), domain.SenderBot)
}

func (a *Assistant) appendLocked(text, from string) domain.Message {
	msg := domain.Message{
		ID:        uuid.NewString(),
		Text:      text,
		From:      from,
		CreatedAt: time.Now(),
	}
	a.transcript = append(a.transcript, msg)
	if a.store != nil {
		if err := a.store.SaveMessage(context.Background(), a.backend.Name(), msg); err != nil {
			a.log.Warn("failed to persist chat message", zap.Error(err))
		}
	}
	return msg
}

// normalizeDate accepts any supported input layout and returns the date in
// the YYYY-MM-DD form the backend stores.
func normalizeDate(value string) (string, bool) {
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// mergeUser overlays the fields the backend returned onto the cached user.
// Empty response fields leave the cached value alone.
func mergeUser(current, updated domain.User) domain.User {
	out := current
	if updated.ID != "" {
		out.ID = updated.ID
	}
	if updated.Email != "" {
		out.Email = updated.Email
	}
	if updated.FirstName != "" {
		out.FirstName = updated.FirstName
	}
	if updated.LastName != "" {
		out.LastName = updated.LastName
	}
	if updated.Address != "" {
		out.Address = updated.Address
	}
	if updated.Birthday != "" {
		out.Birthday = updated.Birthday
	}
	if updated.AvatarURL != "" {
		out.AvatarURL = updated.AvatarURL
	}
	if updated.Bio != "" {
		out.Bio = updated.Bio
	}
	if !updated.UpdatedAt.IsZero() {
		out.UpdatedAt = updated.UpdatedAt
	}
	return out
}
